package asnfmt

import "testing"

func TestToASDOT(t *testing.T) {
	tests := []struct {
		asn  uint32
		want string
	}{
		{0, "AS0"},
		{65536, "AS1.0"},
		{65546, "AS1.10"},
		{4294967295, "AS65535.65535"},
		{15169, "AS15169"},
	}
	for _, tc := range tests {
		if got := ToASDOT(tc.asn); got != tc.want {
			t.Errorf("ToASDOT(%d) = %s, want %s", tc.asn, got, tc.want)
		}
	}
}

func TestFromASDOT(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
	}{
		{"AS15169", 15169},
		{"as15169", 15169},
		{"AS1.10", 65546},
		{"AS0", 0},
	}
	for _, tc := range tests {
		got, err := FromASDOT(tc.in)
		if err != nil {
			t.Fatalf("FromASDOT(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("FromASDOT(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFromASDOT_Malformed(t *testing.T) {
	for _, in := range []string{"", "AS", "ASxyz", "AS1.xyz", "15169"} {
		if _, err := FromASDOT(in); err == nil {
			t.Errorf("FromASDOT(%q) expected error", in)
		}
	}
}

func TestASDOT_RoundTrip(t *testing.T) {
	for _, asn := range []uint32{0, 1, 65535, 65536, 65537, 1000000, 4294967295} {
		got, err := FromASDOT(ToASDOT(asn))
		if err != nil {
			t.Fatalf("round trip for %d: %v", asn, err)
		}
		if got != asn {
			t.Errorf("round trip for %d got %d", asn, got)
		}
	}
}
