package asnindex

import (
	"math/big"
	"net/netip"
	"sort"

	"github.com/ribasn/ribasn/pkg/radix"
)

// ipRange is a prefix reduced to its [start,end] address range as a
// big.Int pair, the representation the aggregation sweep operates on.
// Generalizes the teacher's uint32-only iptoasn.Aggregator.Collapse to
// both address families.
type ipRange struct {
	start, end *big.Int
}

func collapse(prefixes []radix.Prefix, fam radix.Family) []radix.Prefix {
	if len(prefixes) == 0 {
		return nil
	}

	ranges := make([]ipRange, 0, len(prefixes))
	for _, p := range prefixes {
		addr, ok := addrFromPrefix(p)
		if !ok {
			continue
		}
		start := addrToInt(addr)
		host := fam.Bits() - p.Len
		size := new(big.Int).Lsh(big.NewInt(1), uint(host))
		end := new(big.Int).Sub(new(big.Int).Add(start, size), big.NewInt(1))
		ranges = append(ranges, ipRange{start: start, end: end})
	}
	if len(ranges) == 0 {
		return nil
	}

	sort.Slice(ranges, func(i, j int) bool { return ranges[i].start.Cmp(ranges[j].start) < 0 })

	var merged []ipRange
	cur := ranges[0]
	one := big.NewInt(1)
	for _, next := range ranges[1:] {
		if next.start.Cmp(new(big.Int).Add(cur.end, one)) <= 0 {
			if next.end.Cmp(cur.end) > 0 {
				cur.end = next.end
			}
			continue
		}
		merged = append(merged, cur)
		cur = next
	}
	merged = append(merged, cur)

	var out []radix.Prefix
	for _, r := range merged {
		out = append(out, rangeToCIDRs(r.start, r.end, fam)...)
	}
	return out
}

// rangeToCIDRs converts an inclusive [start,end] address range into the
// minimal list of aligned CIDR blocks that exactly cover it.
func rangeToCIDRs(start, end *big.Int, fam radix.Family) []radix.Prefix {
	width := fam.Bits()
	var out []radix.Prefix
	cur := new(big.Int).Set(start)
	one := big.NewInt(1)

	for cur.Cmp(end) <= 0 {
		maxTZ := trailingZeroBits(cur, width)

		prefixLen := width
		for pl := width - maxTZ; pl <= width; pl++ {
			blockSize := new(big.Int).Lsh(big.NewInt(1), uint(width-pl))
			blockEnd := new(big.Int).Sub(new(big.Int).Add(cur, blockSize), one)
			if blockEnd.Cmp(end) <= 0 {
				prefixLen = pl
				break
			}
		}

		addr := intToAddr(cur, fam)
		out = append(out, radix.PrefixFromAddr(addr, prefixLen))

		blockSize := new(big.Int).Lsh(big.NewInt(1), uint(width-prefixLen))
		cur = new(big.Int).Add(cur, blockSize)
	}
	return out
}

func trailingZeroBits(v *big.Int, width int) int {
	if v.Sign() == 0 {
		return width
	}
	n := 0
	t := new(big.Int).Set(v)
	zero := new(big.Int)
	two := big.NewInt(2)
	for n < width {
		mod := new(big.Int).Mod(t, two)
		if mod.Cmp(zero) != 0 {
			break
		}
		t.Rsh(t, 1)
		n++
	}
	return n
}

func addrToInt(addr netip.Addr) *big.Int {
	b := addr.AsSlice()
	return new(big.Int).SetBytes(b)
}

func intToAddr(v *big.Int, fam radix.Family) netip.Addr {
	width := fam.Width()
	b := v.Bytes()
	buf := make([]byte, width)
	copy(buf[width-len(b):], b)
	addr, _ := netip.AddrFromSlice(buf)
	if fam == radix.V4 {
		addr = addr.Unmap()
	}
	return addr
}
