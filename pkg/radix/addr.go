package radix

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"
)

// Family distinguishes the two address spaces the tree keeps logically
// separate roots for.
type Family uint8

const (
	V4 Family = 4
	V6 Family = 6
)

// Width returns the number of significant bytes for the family.
func (f Family) Width() int {
	if f == V4 {
		return 4
	}
	return 16
}

// Bits returns the number of significant address bits for the family.
func (f Family) Bits() int {
	return f.Width() * 8
}

func (f Family) String() string {
	if f == V4 {
		return "v4"
	}
	return "v6"
}

// Error is a sentinel error type, matching the teacher's
// pkg/model.Error pattern: a string constant that implements error.
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrMalformedV4 is returned by ParseAddr/ParsePrefix when a string
	// looks like an IPv4 literal (contains a dot) but fails to parse.
	ErrMalformedV4 Error = "malformed v4 address"
	// ErrMalformedV6 is returned when a string looks like an IPv6 literal
	// (contains a colon) but fails to parse.
	ErrMalformedV6 Error = "malformed v6 address"
	// ErrMalformedPrefix covers CIDR strings with a bad /len component.
	ErrMalformedPrefix Error = "malformed prefix"
)

// Prefix is the (family, bytes, len) triple from the data model. Bits past
// Len are always zero in canonical form (see Canon).
type Prefix struct {
	Family Family
	Addr   [16]byte // only the first Family.Width() bytes are significant
	Len    int
}

// bits returns the address bytes truncated to Family.Width().
func (p Prefix) bits() []byte { return p.Addr[:p.Family.Width()] }

// Canon returns p with all bits past Len zeroed.
func (p Prefix) Canon() Prefix {
	maskBits(p.Addr[:p.Family.Width()], p.Len)
	return p
}

// String renders the canonical textual CIDR form.
func (p Prefix) String() string {
	addr, ok := netip.AddrFromSlice(p.bits())
	if !ok {
		return "<invalid>"
	}
	if p.Family == V4 {
		addr = addr.Unmap()
	}
	return addr.String() + "/" + strconv.Itoa(p.Len)
}

// maskBits zeroes every bit in b at position >= n (0-indexed, MSB first).
func maskBits(b []byte, n int) {
	if n < 0 {
		n = 0
	}
	total := len(b) * 8
	if n >= total {
		return
	}
	byteIdx := n / 8
	bitInByte := n % 8
	if bitInByte != 0 {
		keep := byte(0xFF << uint(8-bitInByte))
		b[byteIdx] &= keep
		byteIdx++
	}
	for ; byteIdx < len(b); byteIdx++ {
		b[byteIdx] = 0
	}
}

// bitAt returns bit i (0-indexed, MSB first) of b as 0 or 1.
func bitAt(b []byte, i int) int {
	byteIdx := i / 8
	if byteIdx >= len(b) {
		return 0
	}
	shift := uint(7 - i%8)
	return int((b[byteIdx] >> shift) & 1)
}

// commonPrefixLen returns the number of leading bits shared by a and b,
// capped at max.
func commonPrefixLen(a, b []byte, max int) int {
	n := 0
	for n < max {
		if bitAt(a, n) != bitAt(b, n) {
			return n
		}
		n++
	}
	return n
}

// PrefixFromAddr builds a canonical Prefix from a netip.Addr and bit length.
func PrefixFromAddr(addr netip.Addr, length int) Prefix {
	var p Prefix
	if addr.Is4() || addr.Is4In6() {
		p.Family = V4
		a4 := addr.As4()
		copy(p.Addr[:4], a4[:])
	} else {
		p.Family = V6
		a16 := addr.As16()
		copy(p.Addr[:16], a16[:])
	}
	p.Len = length
	return p.Canon()
}

// ParsePrefix parses a textual CIDR ("1.2.3.0/24", "2001:db8::/32") into a
// canonical Prefix. Errors are tagged per §4.1: strings that look like v4
// (contain '.') fail with ErrMalformedV4; strings that look like v6
// (contain ':') fail with ErrMalformedV6.
func ParsePrefix(s string) (Prefix, error) {
	slash := strings.LastIndexByte(s, '/')
	if slash < 0 {
		return Prefix{}, classifyMalformed(s, fmt.Errorf("%w: missing /len", ErrMalformedPrefix))
	}
	addrPart, lenPart := s[:slash], s[slash+1:]
	length, err := strconv.Atoi(lenPart)
	if err != nil {
		return Prefix{}, classifyMalformed(s, fmt.Errorf("%w: bad length %q", ErrMalformedPrefix, lenPart))
	}
	addr, err := netip.ParseAddr(addrPart)
	if err != nil {
		return Prefix{}, classifyMalformed(s, err)
	}
	maxBits := 32
	if addr.Is6() && !addr.Is4In6() {
		maxBits = 128
	}
	if length < 0 || length > maxBits {
		return Prefix{}, classifyMalformed(s, fmt.Errorf("%w: length %d out of range", ErrMalformedPrefix, length))
	}
	return PrefixFromAddr(addr, length), nil
}

// ParseAddr parses a bare IP literal, tagging malformed-input errors with
// the family the caller evidently intended (per §4.1 input validation).
func ParseAddr(s string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, classifyMalformed(s, err)
	}
	return addr, nil
}

func classifyMalformed(s string, cause error) error {
	switch {
	case strings.ContainsRune(s, ':'):
		return fmt.Errorf("%w: %q: %v", ErrMalformedV6, s, cause)
	case strings.ContainsRune(s, '.'):
		return fmt.Errorf("%w: %q: %v", ErrMalformedV4, s, cause)
	default:
		return fmt.Errorf("%w: %q: %v", ErrMalformedPrefix, s, cause)
	}
}
