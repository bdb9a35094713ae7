package mrt

import (
	"bytes"
	"testing"
)

func writeHeader(buf *bytes.Buffer, typ, subType uint16, body []byte) {
	putU32(buf, 0)
	putU16(buf, typ)
	putU16(buf, subType)
	putU32(buf, uint32(len(body)))
	buf.Write(body)
}

func TestParseStream_StripsDefaultRoute(t *testing.T) {
	var stream bytes.Buffer

	aspathDefault := buildASPathAttr(encodeSegment(SegAS_SEQUENCE, []uint32{701}, 4))
	defaultBody := buildRIBRecordBody(0, nil, [][]byte{buildRIBEntry(0, 0, aspathDefault)})
	writeHeader(&stream, TypeTableDumpV2, T2RIBIPv4, defaultBody)

	aspath := buildASPathAttr(encodeSegment(SegAS_SEQUENCE, []uint32{15169}, 4))
	body := buildRIBRecordBody(24, []byte{8, 8, 8}, [][]byte{buildRIBEntry(0, 0, aspath)})
	writeHeader(&stream, TypeTableDumpV2, T2RIBIPv4, body)

	prefixes, err := ParseStream(&stream, ParseOptions{})
	if err != nil {
		t.Fatalf("ParseStream: %v", err)
	}
	if prefixes.Has("0.0.0.0/0") {
		t.Fatal("default route should have been stripped")
	}
	if prefixes.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", prefixes.Len())
	}
	origin, ok := prefixes.Get("8.8.8.0/24")
	if !ok || origin.Scalar != 15169 {
		t.Fatalf("got %+v, %v", origin, ok)
	}
}

func TestParseStream_FirstOccurrenceWins(t *testing.T) {
	var stream bytes.Buffer

	aspath1 := buildASPathAttr(encodeSegment(SegAS_SEQUENCE, []uint32{100}, 4))
	body1 := buildRIBRecordBody(24, []byte{1, 0, 0}, [][]byte{buildRIBEntry(0, 0, aspath1)})
	writeHeader(&stream, TypeTableDumpV2, T2RIBIPv4, body1)

	aspath2 := buildASPathAttr(encodeSegment(SegAS_SEQUENCE, []uint32{200}, 4))
	body2 := buildRIBRecordBody(24, []byte{1, 0, 0}, [][]byte{buildRIBEntry(0, 0, aspath2)})
	writeHeader(&stream, TypeTableDumpV2, T2RIBIPv4, body2)

	prefixes, err := ParseStream(&stream, ParseOptions{})
	if err != nil {
		t.Fatalf("ParseStream: %v", err)
	}
	origin, ok := prefixes.Get("1.0.0.0/24")
	if !ok || origin.Scalar != 100 {
		t.Fatalf("expected first-occurrence origin 100, got %+v", origin)
	}
}

func TestPrefixMap_DeleteKeepsOrder(t *testing.T) {
	m := NewPrefixMap()
	m.Put("a", Origin{Scalar: 1})
	m.Put("b", Origin{Scalar: 2})
	m.Put("c", Origin{Scalar: 3})
	m.Delete("b")

	var got []string
	m.Range(func(prefix string, _ Origin) bool {
		got = append(got, prefix)
		return true
	})
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("got %v, want [a c]", got)
	}
}
