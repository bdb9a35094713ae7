package mrt

import (
	"encoding/binary"
	"fmt"
)

// decodePeerIndex parses a TABLE_DUMP_V2 PEER_INDEX_TABLE (sub-type 1)
// body: collector_bgp_id:u32, view_name_len:u16, view_name:bytes,
// peer_count:u16, ... (peer list itself is not retained, §4.4).
func decodePeerIndex(buf []byte) (PeerIndexRecord, error) {
	if len(buf) < 6 {
		return PeerIndexRecord{}, fmt.Errorf("%w: PEER_INDEX header truncated", ErrShortRead)
	}
	collector := binary.BigEndian.Uint32(buf[0:4])
	vnLen := int(binary.BigEndian.Uint16(buf[4:6]))
	if len(buf) < 6+vnLen+2 {
		return PeerIndexRecord{}, fmt.Errorf("%w: PEER_INDEX view name/peer count truncated", ErrShortRead)
	}
	viewName := string(buf[6 : 6+vnLen])
	peerCount := binary.BigEndian.Uint16(buf[6+vnLen : 8+vnLen])
	return PeerIndexRecord{
		CollectorBGPID: collector,
		ViewName:       viewName,
		PeerCount:      peerCount,
	}, nil
}

// decodeRIB parses a TABLE_DUMP_V2 RIB_IPV4_UNICAST/RIB_IPV6_UNICAST
// (sub-type 2/4) body:
//
//	seq:u32, prefix_len:u8, prefix_octets:ceil(len/8), entry_count:u16,
//	entries[entry_count]
//
// Each entry: peer_index:u16, orig_ts:u32, attr_len:u16, attrs:attr_len.
// opts.Fast limits decoding to the first entry — later entries are never
// consulted for origin selection (§4.4 "First-entry shortcut").
func decodeRIB(buf []byte, subType uint16, opts ParseOptions) (RIBRecord, error) {
	v6 := subType == T2RIBIPv6
	width := 4
	if v6 {
		width = 16
	}
	if len(buf) < 5 {
		return RIBRecord{}, fmt.Errorf("%w: RIB header truncated", ErrShortRead)
	}
	seq := binary.BigEndian.Uint32(buf[0:4])
	prefixLen := int(buf[4])
	maxLen := width * 8
	if prefixLen < 0 || prefixLen > maxLen {
		return RIBRecord{}, fmt.Errorf("%w: RIB prefix_len %d out of range", ErrStructural, prefixLen)
	}
	octetCount := (prefixLen + 7) / 8

	if len(buf) < 5+octetCount+2 {
		return RIBRecord{}, fmt.Errorf("%w: RIB prefix octets/entry_count truncated", ErrShortRead)
	}
	prefixOctets := buf[5 : 5+octetCount]
	prefix := prefixFromOctets(prefixOctets, prefixLen, v6)

	entryCount := int(binary.BigEndian.Uint16(buf[5+octetCount : 7+octetCount]))
	body := buf[7+octetCount:]

	rec := RIBRecord{AFI: subType, Seq: seq, Prefix: prefix}
	for i := 0; i < entryCount; i++ {
		entry, n, err := decodeRIBEntry(body)
		if err != nil {
			return RIBRecord{}, err
		}
		rec.Entries = append(rec.Entries, entry)
		body = body[n:]
		if opts.Fast {
			// Only entry 0's attributes are ever consulted for origin.
			break
		}
	}
	return rec, nil
}

func decodeRIBEntry(buf []byte) (RIBEntry, int, error) {
	if len(buf) < 8 {
		return RIBEntry{}, 0, fmt.Errorf("%w: RIB entry header truncated", ErrShortRead)
	}
	peerIndex := binary.BigEndian.Uint16(buf[0:2])
	origTS := binary.BigEndian.Uint32(buf[2:6])
	attrLen := binary.BigEndian.Uint16(buf[6:8])
	total := 8 + int(attrLen)
	if len(buf) < total {
		return RIBEntry{}, 0, fmt.Errorf("%w: RIB entry attrs truncated", ErrShortRead)
	}
	return RIBEntry{
		PeerIndex: peerIndex,
		OrigTS:    origTS,
		AttrLen:   attrLen,
		rawAttrs:  buf[8:total],
	}, total, nil
}

// decodeAttrs lazily parses this entry's attribute block; ASN width is 4
// bytes for TDv2.
func (e *RIBEntry) decodeAttrs(opts ParseOptions) ([]Attribute, error) {
	if e.attrs == nil && e.AttrLen > 0 {
		attrs, err := decodeAttributes(e.rawAttrs, opts.Fast)
		if err != nil {
			return nil, err
		}
		e.attrs = attrs
	}
	return e.attrs, nil
}
