package asnindex

import (
	"testing"

	"github.com/ribasn/ribasn/pkg/radix"
)

func mustPrefix(t *testing.T, s string) radix.Prefix {
	t.Helper()
	p, err := radix.ParsePrefix(s)
	if err != nil {
		t.Fatalf("ParsePrefix(%q): %v", s, err)
	}
	return p
}

func TestForASN(t *testing.T) {
	tree := radix.New()
	tree.Add(mustPrefix(t, "1.0.0.0/24"), 100)
	tree.Add(mustPrefix(t, "1.0.1.0/24"), 100)
	tree.Add(mustPrefix(t, "2.0.0.0/24"), 200)

	idx := New(tree)
	got := idx.ForASN(100)
	if len(got) != 2 {
		t.Fatalf("ForASN(100) = %v, want 2 prefixes", got)
	}
}

func TestForASN_ExactNotBestMatch(t *testing.T) {
	// A more-specific /25 owned by ASN 2 must not be misattributed to
	// the covering /24 owned by ASN 1 (the exact-match requirement of §4.8).
	tree := radix.New()
	tree.Add(mustPrefix(t, "1.0.0.0/24"), 1)
	tree.Add(mustPrefix(t, "1.0.0.0/25"), 2)

	idx := New(tree)
	for_1 := idx.ForASN(1)
	for_2 := idx.ForASN(2)

	if len(for_1) != 1 || for_1[0].String() != "1.0.0.0/24" {
		t.Fatalf("ForASN(1) = %v", for_1)
	}
	if len(for_2) != 1 || for_2[0].String() != "1.0.0.0/25" {
		t.Fatalf("ForASN(2) = %v", for_2)
	}
}

func TestEffectivePrefixes_CollapsesAdjacent(t *testing.T) {
	tree := radix.New()
	tree.Add(mustPrefix(t, "1.0.0.0/25"), 100)
	tree.Add(mustPrefix(t, "1.0.0.128/25"), 100)

	idx := New(tree)
	eff := idx.EffectivePrefixes(100)
	if len(eff) != 1 || eff[0].String() != "1.0.0.0/24" {
		t.Fatalf("EffectivePrefixes(100) = %v, want [1.0.0.0/24]", eff)
	}
}

func TestSize(t *testing.T) {
	tree := radix.New()
	tree.Add(mustPrefix(t, "1.0.0.0/24"), 100)

	idx := New(tree)
	size := idx.Size(100)
	if size.Int64() != 256 {
		t.Fatalf("Size(100) = %s, want 256", size.String())
	}
}

func TestSize_IPv6ExceedsUint64(t *testing.T) {
	tree := radix.New()
	tree.Add(mustPrefix(t, "2001:db8::/32"), 100)

	idx := New(tree)
	size := idx.Size(100)
	// 2^(128-32) = 2^96, far beyond uint64 range.
	if size.BitLen() <= 64 {
		t.Fatalf("expected size to exceed 64 bits, got BitLen=%d", size.BitLen())
	}
}
