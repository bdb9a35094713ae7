package mrt

import (
	"encoding/binary"
	"fmt"
)

// decodeTDv1 parses a TABLE_DUMP (type 12) record body, per RFC 6396 §4.2:
//
//	view:u16, seq:u16, prefix:4|16B, len:u8, status:u8, orig_ts:u32,
//	peer_ip:4|16B, peer_as:u16, attr_len:u16, attrs[attr_len]
//
// status MUST be 1 (§4.4); ASNs in the attribute block are 2 bytes wide
// (pre-RFC 4893).
func decodeTDv1(buf []byte, subType uint16) (TDv1Record, error) {
	octs := 4
	if subType == T1AFIIPv6 {
		octs = 16
	} else if subType != T1AFIIPv4 {
		return TDv1Record{}, fmt.Errorf("%w: TDv1 sub-type %d", ErrStructural, subType)
	}

	fixedLen := 14 + 2*octs
	if len(buf) < fixedLen {
		return TDv1Record{}, fmt.Errorf("%w: TDv1 record truncated", ErrShortRead)
	}

	view := binary.BigEndian.Uint16(buf[0:2])
	seq := binary.BigEndian.Uint16(buf[2:4])

	addrBytes := buf[4 : 4+octs]
	prefixLen := int(buf[4+octs])
	status := buf[5+octs]
	if status != 1 {
		return TDv1Record{}, fmt.Errorf("%w: TDv1 status octet %d, want 1", ErrStructural, status)
	}
	origTS := binary.BigEndian.Uint32(buf[6+octs : 10+octs])
	// peer_ip at buf[10+octs : 10+2*octs] is recorded but not needed.
	peerAS := binary.BigEndian.Uint16(buf[10+2*octs : 12+2*octs])
	attrLen := binary.BigEndian.Uint16(buf[12+2*octs : 14+2*octs])

	rawAttrs := buf[fixedLen:]
	if len(rawAttrs) < int(attrLen) {
		return TDv1Record{}, fmt.Errorf("%w: TDv1 attr_len %d exceeds remaining body", ErrShortRead, attrLen)
	}
	rawAttrs = rawAttrs[:attrLen]

	prefix := prefixFromBytes(addrBytes, prefixLen, subType == T1AFIIPv6)

	return TDv1Record{
		AFI:      subType,
		View:     view,
		Seq:      seq,
		Prefix:   prefix,
		Status:   status,
		OrigTS:   origTS,
		PeerAS:   peerAS,
		AttrLen:  attrLen,
		rawAttrs: rawAttrs,
	}, nil
}

// decodeAttrs lazily parses this record's attribute block; ASN width is 2 bytes
// for TDv1, per RFC 4271-era encoding.
func (r *TDv1Record) decodeAttrs(opts ParseOptions) ([]Attribute, error) {
	if r.attrs == nil && r.AttrLen > 0 {
		attrs, err := decodeAttributes(r.rawAttrs, opts.Fast)
		if err != nil {
			return nil, err
		}
		r.attrs = attrs
	}
	return r.attrs, nil
}
