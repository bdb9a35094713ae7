package radix

import (
	"errors"
	"testing"
)

func TestParsePrefix_Canonical(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"8.8.8.0/24", "8.8.8.0/24"},
		{"8.8.8.1/24", "8.8.8.0/24"}, // bits past len must be zeroed
		{"2001:db8::/32", "2001:db8::/32"},
	}
	for _, tc := range tests {
		p, err := ParsePrefix(tc.in)
		if err != nil {
			t.Fatalf("ParsePrefix(%q): %v", tc.in, err)
		}
		if got := p.String(); got != tc.want {
			t.Errorf("ParsePrefix(%q).String() = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestParseAddr_MalformedKind(t *testing.T) {
	_, err := ParseAddr("8.8.8.800")
	if !errors.Is(err, ErrMalformedV4) {
		t.Errorf("expected ErrMalformedV4, got %v", err)
	}

	_, err = ParseAddr("2001:zzzz::1")
	if !errors.Is(err, ErrMalformedV6) {
		t.Errorf("expected ErrMalformedV6, got %v", err)
	}
}
