package download

import (
	"strings"
	"testing"
)

func TestParseDatesFile(t *testing.T) {
	in := "# comment\n20240101\n\n20240215\n"
	dates, err := ParseDatesFile(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseDatesFile: %v", err)
	}
	if len(dates) != 2 {
		t.Fatalf("got %d dates, want 2", len(dates))
	}
	if dates[0].Format("2006-01-02") != "2024-01-01" {
		t.Errorf("got %s", dates[0])
	}
	if dates[1].Format("2006-01-02") != "2024-02-15" {
		t.Errorf("got %s", dates[1])
	}
}

func TestParseDatesFile_Malformed(t *testing.T) {
	if _, err := ParseDatesFile(strings.NewReader("not-a-date\n")); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestSnapshotPriority(t *testing.T) {
	if snapshotPriority("0600") >= snapshotPriority("0500") {
		t.Error("0600 should be preferred over 0500")
	}
	if snapshotPriority("0500") >= snapshotPriority("1200") {
		t.Error("0500 should be preferred over arbitrary times")
	}
	if snapshotPriority("1200") >= snapshotPriority("0000") {
		t.Error("non-midnight snapshot should be preferred over 0000")
	}
}
