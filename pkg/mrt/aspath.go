package mrt

import (
	"encoding/binary"
	"fmt"
)

// AS_PATH segment types, per RFC 4271 §4.3 and the original pyasn
// BgpPathSegment constants.
const (
	SegAS_SET             uint8 = 1
	SegAS_SEQUENCE        uint8 = 2
	SegAS_CONFED_SEQUENCE uint8 = 3
	SegAS_CONFED_SET      uint8 = 4
)

// PathSegment is one AS_SET/AS_SEQUENCE/AS_CONFED_* run within an AS_PATH.
type PathSegment struct {
	Type uint8
	ASNs []uint32
}

// ASPath is the decoded AS_PATH attribute body: a sequence of path
// segments, each carrying 2- or 4-byte ASNs depending on the enclosing
// record's ASN width.
type ASPath struct {
	Segments []PathSegment
}

// decodeASPath parses the full AS_PATH attribute value. asnWidth is 2 for
// TDv1 records (pre-RFC 4893 ASNs) and 4 for TDv2.
func decodeASPath(data []byte, asnWidth int) (ASPath, error) {
	var path ASPath
	for len(data) > 0 {
		if len(data) < 2 {
			return ASPath{}, fmt.Errorf("%w: as-path segment header truncated", ErrShortRead)
		}
		segType, count := data[0], int(data[1])
		data = data[2:]

		switch segType {
		case SegAS_SET, SegAS_SEQUENCE, SegAS_CONFED_SEQUENCE, SegAS_CONFED_SET:
		default:
			return ASPath{}, fmt.Errorf("%w: segment type %d", ErrUnsupportedSegment, segType)
		}

		need := count * asnWidth
		if len(data) < need {
			return ASPath{}, fmt.Errorf("%w: as-path segment body truncated", ErrShortRead)
		}
		asns := make([]uint32, count)
		for i := 0; i < count; i++ {
			chunk := data[i*asnWidth : (i+1)*asnWidth]
			if asnWidth == 4 {
				asns[i] = binary.BigEndian.Uint32(chunk)
			} else {
				asns[i] = uint32(binary.BigEndian.Uint16(chunk))
			}
		}
		data = data[need:]
		path.Segments = append(path.Segments, PathSegment{Type: segType, ASNs: asns})
	}
	return path, nil
}
