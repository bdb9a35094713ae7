package ipasndb

import (
	"net/netip"
	"testing"
)

func TestLoadString(t *testing.T) {
	text := "; IP-ASN32-DAT file\n" +
		"; comment line\n" +
		"\n" +
		"1.0.0.0/24\t15169\n" +
		"2001:db8::/32\t64500\n" +
		"garbage line with no tab asn\n" +
		"1.0.0.0/24\t701\n" // duplicate: last wins

	tree, stats, err := LoadString(text)
	if err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	if stats.V4 != 2 {
		t.Errorf("stats.V4 = %d, want 2 (two lines touching the v4 entry)", stats.V4)
	}
	if stats.V6 != 1 {
		t.Errorf("stats.V6 = %d, want 1", stats.V6)
	}
	if stats.Rejected != 1 {
		t.Errorf("stats.Rejected = %d, want 1", stats.Rejected)
	}

	n := tree.SearchExact(netip.MustParseAddr("1.0.0.0"), 24)
	if n == nil || n.ASN != 701 {
		t.Fatalf("expected last-wins ASN 701, got %+v", n)
	}
}

func TestLoadString_SkipsCommentsAndBlanks(t *testing.T) {
	text := "# hash comment\n; semicolon comment\n\n8.8.8.0/24\t15169\n"
	tree, stats, err := LoadString(text)
	if err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	if tree.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tree.Len())
	}
	if stats.Rejected != 0 {
		t.Fatalf("Rejected = %d, want 0", stats.Rejected)
	}
}
