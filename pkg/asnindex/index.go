// Package asnindex builds derived per-ASN views over a loaded radix.Tree:
// every prefix a given ASN originates, its CIDR-aggregated "effective"
// form, and the total address count those effective prefixes cover (C8 in
// the design).
package asnindex

import (
	"math/big"
	"net/netip"
	"sort"

	"github.com/ribasn/ribasn/pkg/radix"
)

// Index wraps a *radix.Tree and memoizes the ASN->prefixes mapping on
// first use, since building it requires a full tree walk.
type Index struct {
	tree *radix.Tree

	byASN map[uint32][]radix.Prefix // built lazily, on first ForASN/EffectivePrefixes/Size call
}

// New wraps tree for derived-view queries.
func New(tree *radix.Tree) *Index {
	return &Index{tree: tree}
}

// build walks every real node once, and recovers each node's owning
// ASN(s) via exact-match lookup -- NOT best-match, per §4.8: using
// best-match here would misattribute a more-specific prefix's entry to
// whatever covering prefix happens to shadow it during the walk.
func (x *Index) build() {
	if x.byASN != nil {
		return
	}
	byASN := make(map[uint32][]radix.Prefix)
	x.tree.Walk(func(p radix.Prefix, asn uint32, asnSet []uint32) {
		addr, ok := addrFromPrefix(p)
		if !ok {
			return
		}
		exact := x.tree.SearchExact(addr, p.Len)
		if exact == nil {
			return
		}
		if exact.ASNSet != nil {
			for _, a := range exact.ASNSet {
				byASN[a] = append(byASN[a], p)
			}
			return
		}
		byASN[exact.ASN] = append(byASN[exact.ASN], p)
	})
	x.byASN = byASN
}

// ForASN returns every prefix recorded for asn, in no particular order.
func (x *Index) ForASN(asn uint32) []radix.Prefix {
	x.build()
	return append([]radix.Prefix(nil), x.byASN[asn]...)
}

// EffectivePrefixes returns asn's prefixes with overlaps and adjacent
// blocks collapsed, per family independently (standard CIDR aggregation,
// generalized from the teacher's iptoasn.Aggregator.Collapse to operate
// on both 32-bit and 128-bit address spaces via big.Int).
func (x *Index) EffectivePrefixes(asn uint32) []radix.Prefix {
	all := x.ForASN(asn)

	var v4, v6 []radix.Prefix
	for _, p := range all {
		if p.Family == radix.V4 {
			v4 = append(v4, p)
		} else {
			v6 = append(v6, p)
		}
	}

	out := collapse(v4, radix.V4)
	out = append(out, collapse(v6, radix.V6)...)
	return out
}

// Size returns the total address count covered by asn's effective
// prefixes. IPv6 totals routinely exceed 64 bits, hence big.Int.
func (x *Index) Size(asn uint32) *big.Int {
	total := new(big.Int)
	for _, p := range x.EffectivePrefixes(asn) {
		width := p.Family.Bits()
		host := width - p.Len
		block := new(big.Int).Lsh(big.NewInt(1), uint(host))
		total.Add(total, block)
	}
	return total
}

func addrFromPrefix(p radix.Prefix) (netip.Addr, bool) {
	width := p.Family.Width()
	return netip.AddrFromSlice(p.Addr[:width])
}
