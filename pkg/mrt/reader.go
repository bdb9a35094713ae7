package mrt

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Reader is a lazy pull iterator over an MRT byte stream: each call to
// Next reads exactly one record's header and body, allocating no more
// than one record's worth of body at a time (§5 "Resource policy").
type Reader struct {
	r    io.Reader
	opts ParseOptions
}

// NewReader wraps r (already decompressed, if needed) as an MRT record
// stream using the given parse options.
func NewReader(r io.Reader, opts ParseOptions) *Reader {
	return &Reader{r: r, opts: opts}
}

// Next reads and decodes the next record. It returns io.EOF when the
// stream ends cleanly at a record boundary (zero bytes read for the next
// header); any other short read is fatal (ErrShortRead) regardless of
// SkipOnError, since it leaves the stream desynchronized (§5 "Failure
// propagation... structural failures... remain fatal").
func (r *Reader) Next() (*Record, error) {
	var hdr [headerLen]byte
	n, err := io.ReadFull(r.r, hdr[:])
	if err != nil {
		if n == 0 && (err == io.EOF || err == io.ErrUnexpectedEOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: reading header: %v", ErrShortRead, err)
	}

	ts := binary.BigEndian.Uint32(hdr[0:4])
	typ := binary.BigEndian.Uint16(hdr[4:6])
	subType := binary.BigEndian.Uint16(hdr[6:8])
	dataLen := binary.BigEndian.Uint32(hdr[8:12])

	body := make([]byte, dataLen)
	if _, err := io.ReadFull(r.r, body); err != nil {
		return nil, fmt.Errorf("%w: reading %d-byte body: %v", ErrShortRead, dataLen, err)
	}

	rec := &Record{TS: ts, Type: typ, SubType: subType, DataLen: dataLen}

	switch typ {
	case TypeTableDump:
		detail, err := decodeTDv1(body, subType)
		if err != nil {
			return nil, err
		}
		rec.Detail = detail

	case TypeTableDumpV2:
		switch subType {
		case T2PeerIndex:
			detail, err := decodePeerIndex(body)
			if err != nil {
				return nil, err
			}
			rec.Detail = detail
		case T2RIBIPv4, T2RIBIPv6:
			detail, err := decodeRIB(body, subType, r.opts)
			if err != nil {
				return nil, err
			}
			rec.Detail = detail
		default:
			return nil, fmt.Errorf("%w: TABLE_DUMP_V2 sub-type %d", ErrStructural, subType)
		}

	default:
		return nil, fmt.Errorf("%w: MRT type %d", ErrStructural, typ)
	}

	return rec, nil
}
