package radix

import "testing"

func TestDumpLoadRoundTrip(t *testing.T) {
	tree := New()
	p1, _ := ParsePrefix("1.0.0.0/24")
	p2, _ := ParsePrefix("2001:db8::/32")
	p3, _ := ParsePrefix("1.38.0.0/17")
	tree.Add(p1, 15169)
	tree.Add(p2, 64500)
	tree.AddSet(p3, []uint32{38266, 38267})

	blob, err := tree.Dump()
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}

	reloaded, err := Load(blob)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got, want := reloaded.Len(), tree.Len(); got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}

	n := reloaded.SearchExact(mustAddr(t, "1.0.0.0"), 24)
	if n == nil || n.ASN != 15169 {
		t.Fatalf("v4 entry not preserved: %+v", n)
	}
	n = reloaded.SearchExact(mustAddr(t, "2001:db8::"), 32)
	if n == nil || n.ASN != 64500 {
		t.Fatalf("v6 entry not preserved: %+v", n)
	}
	n = reloaded.SearchExact(mustAddr(t, "1.38.0.0"), 17)
	if n == nil || len(n.ASNSet) != 2 {
		t.Fatalf("set entry not preserved: %+v", n)
	}
}
