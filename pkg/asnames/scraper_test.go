package asnames

import (
	"strings"
	"testing"
)

const sampleHTML = `<html><body>
<a href="/cgi-bin/as-report?as=AS1&view=2.0">AS1    </a> LVLT-1, US
<a href="/cgi-bin/as-report?as=AS15169&view=2.0">AS15169   </a> GOOGLE, US
not-a-link line should be skipped
<a href="/cgi-bin/as-report?as=AS4200000000&view=2.0">AS4200000000 </a> PRIVATE-USE, ZZ
</body></html>
`

func TestParseHTML(t *testing.T) {
	table, err := ParseHTML(strings.NewReader(sampleHTML))
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}
	if table.Name(1) != "LVLT-1, US" {
		t.Errorf("Name(1) = %q", table.Name(1))
	}
	if table.Name(15169) != "GOOGLE, US" {
		t.Errorf("Name(15169) = %q", table.Name(15169))
	}
	if table.Name(4200000000) != "PRIVATE-USE, ZZ" {
		t.Errorf("Name(4200000000) = %q", table.Name(4200000000))
	}
}

func TestName_MissingFallsBackToUnknown(t *testing.T) {
	table := Table{}
	if got := table.Name(64512); got != "unknown" {
		t.Errorf("Name(unmapped) = %q, want %q", got, "unknown")
	}
}
