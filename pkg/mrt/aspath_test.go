package mrt

import (
	"encoding/binary"
	"testing"
)

func encodeSegment(segType uint8, asns []uint32, width int) []byte {
	buf := []byte{segType, byte(len(asns))}
	for _, a := range asns {
		if width == 4 {
			var b [4]byte
			binary.BigEndian.PutUint32(b[:], a)
			buf = append(buf, b[:]...)
		} else {
			var b [2]byte
			binary.BigEndian.PutUint16(b[:], uint16(a))
			buf = append(buf, b[:]...)
		}
	}
	return buf
}

func TestDecodeASPath_RoundTrip(t *testing.T) {
	wire := append(
		encodeSegment(SegAS_SEQUENCE, []uint32{701, 6453, 15169}, 4),
		encodeSegment(SegAS_SET, []uint32{38266}, 4)...,
	)

	path, err := decodeASPath(wire, 4)
	if err != nil {
		t.Fatalf("decodeASPath: %v", err)
	}
	if len(path.Segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(path.Segments))
	}
	if path.Segments[0].Type != SegAS_SEQUENCE || len(path.Segments[0].ASNs) != 3 {
		t.Fatalf("segment 0 = %+v", path.Segments[0])
	}
	if path.Segments[1].Type != SegAS_SET || path.Segments[1].ASNs[0] != 38266 {
		t.Fatalf("segment 1 = %+v", path.Segments[1])
	}
}

func TestDecodeASPath_UnsupportedSegment(t *testing.T) {
	wire := encodeSegment(9, []uint32{1}, 4)
	if _, err := decodeASPath(wire, 4); err == nil {
		t.Fatal("expected error for unknown segment type")
	}
}

func TestDecodeASPath_TwoByteASNs(t *testing.T) {
	wire := encodeSegment(SegAS_SEQUENCE, []uint32{701, 15169}, 2)
	path, err := decodeASPath(wire, 2)
	if err != nil {
		t.Fatalf("decodeASPath: %v", err)
	}
	if path.Segments[0].ASNs[1] != 15169 {
		t.Fatalf("got %v", path.Segments[0].ASNs)
	}
}

func TestDecodeAttribute_ExtendedLength(t *testing.T) {
	value := make([]byte, 300)
	for i := range value {
		value[i] = byte(i)
	}
	buf := []byte{0x10, AttrASPath, 0x01, 0x2C} // flags with ext-len bit, length 300
	buf = append(buf, value...)

	attr, n, err := decodeAttribute(buf)
	if err != nil {
		t.Fatalf("decodeAttribute: %v", err)
	}
	if n != len(buf) {
		t.Fatalf("consumed %d bytes, want %d", n, len(buf))
	}
	if len(attr.Data) != 300 {
		t.Fatalf("Data len = %d, want 300", len(attr.Data))
	}
}

func TestDecodeAttribute_ShortForm(t *testing.T) {
	buf := []byte{0x00, AttrASPath, 0x02, 0xAA, 0xBB}
	attr, n, err := decodeAttribute(buf)
	if err != nil {
		t.Fatalf("decodeAttribute: %v", err)
	}
	if n != 5 || len(attr.Data) != 2 {
		t.Fatalf("got n=%d data=%v", n, attr.Data)
	}
}
