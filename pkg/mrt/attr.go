package mrt

import (
	"encoding/binary"
	"fmt"
)

// AttrASPath is the BGP attribute type code for AS_PATH (RFC 4271 §5).
const AttrASPath uint8 = 2

// Attribute is one BGP path attribute as it appears in an MRT record's
// attribute block: flags, type code, and the raw value bytes. Decoding
// the value (e.g. into an ASPath) happens lazily, on demand, matching the
// teacher's original_source BgpAttribute.path_detail() laziness.
type Attribute struct {
	Flags byte
	Type  uint8
	Data  []byte
}

// hasExtendedLength reports whether bit 0x10 of flags is set, selecting a
// 2-byte length field instead of 1 (RFC 4271 §4.3).
func hasExtendedLength(flags byte) bool { return flags&0x10 != 0 }

// decodeAttribute parses one attribute from the front of buf and returns
// it along with the number of bytes consumed.
func decodeAttribute(buf []byte) (Attribute, int, error) {
	if len(buf) < 3 {
		return Attribute{}, 0, fmt.Errorf("%w: attribute header truncated", ErrShortRead)
	}
	flags, typ := buf[0], buf[1]
	var length int
	var headerLen int
	if hasExtendedLength(flags) {
		if len(buf) < 4 {
			return Attribute{}, 0, fmt.Errorf("%w: extended attribute length truncated", ErrShortRead)
		}
		length = int(binary.BigEndian.Uint16(buf[2:4]))
		headerLen = 4
	} else {
		length = int(buf[2])
		headerLen = 3
	}
	total := headerLen + length
	if len(buf) < total {
		return Attribute{}, 0, fmt.Errorf("%w: attribute value truncated", ErrShortRead)
	}
	return Attribute{Flags: flags, Type: typ, Data: buf[headerLen:total]}, total, nil
}

// decodeAttributes parses the full attr_len-byte attribute block. If
// stopAfterASPath is set (the "Fast" parsing option), decoding stops as
// soon as an AS_PATH attribute has been found — later attributes aren't
// needed to determine the origin AS and are never examined (§4.4 "lazy
// attribute parsing... optimization, not a semantic requirement").
func decodeAttributes(buf []byte, stopAfterASPath bool) ([]Attribute, error) {
	var attrs []Attribute
	for len(buf) > 0 {
		a, n, err := decodeAttribute(buf)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
		buf = buf[n:]
		if stopAfterASPath && a.Type == AttrASPath {
			break
		}
	}
	return attrs, nil
}

// findASPath returns the single AS_PATH attribute among attrs, if any.
func findASPath(attrs []Attribute) (Attribute, bool) {
	for _, a := range attrs {
		if a.Type == AttrASPath {
			return a, true
		}
	}
	return Attribute{}, false
}
