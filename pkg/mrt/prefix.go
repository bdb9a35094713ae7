package mrt

import "github.com/ribasn/ribasn/pkg/radix"

// prefixFromBytes reconstructs a canonical Prefix from a full-width
// address byte slice (4 or 16 bytes, already zero-padded by the caller)
// and a prefix length, per §4.4's "prefix reconstruction" rule.
func prefixFromBytes(full []byte, length int, v6 bool) Prefix {
	p := Prefix{Len: length}
	if v6 {
		p.Family = radix.V6
		copy(p.Addr[:16], full)
	} else {
		p.Family = radix.V4
		copy(p.Addr[:4], full)
	}
	return p.Canon()
}

// prefixFromOctets reconstructs a canonical Prefix from the TDv2 wire
// encoding: ceil(len/8) significant octets, right-padded with zeros to the
// family's full width (§4.4 "Prefix reconstruction").
func prefixFromOctets(octets []byte, length int, v6 bool) Prefix {
	width := 4
	if v6 {
		width = 16
	}
	full := make([]byte, width)
	copy(full, octets)
	return prefixFromBytes(full, length, v6)
}
