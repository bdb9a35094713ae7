// Package download provides the archive-fetching glue: RouteViews FTP
// retrieval, HTTP bulk retrieval by date, and the compression-sniffing
// archive opener shared by the MRT reader and the IPASN DB loader.
package download

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Compression identifies the framing detected on an archive stream.
type Compression int

const (
	Plain Compression = iota
	Gzip
	Bzip2
)

var (
	gzipMagic  = []byte{0x1F, 0x8B}
	bzip2Magic = []byte{'B', 'Z', 'h'}
)

// DetectCompression sniffs the first bytes of r (which must support
// Peek, as returned by bufio.NewReader) to classify its framing per §6:
// leading 1F 8B selects gzip, leading "BZh" selects bzip2, else plain.
func DetectCompression(r *bufio.Reader) (Compression, error) {
	head, err := r.Peek(3)
	if err != nil && err != io.EOF {
		return Plain, fmt.Errorf("download: sniff archive: %w", err)
	}
	switch {
	case len(head) >= 2 && head[0] == gzipMagic[0] && head[1] == gzipMagic[1]:
		return Gzip, nil
	case len(head) >= 3 && head[0] == bzip2Magic[0] && head[1] == bzip2Magic[1] && head[2] == bzip2Magic[2]:
		return Bzip2, nil
	default:
		return Plain, nil
	}
}

// OpenArchive opens path and returns a reader that transparently
// decompresses it if it is gzip or bzip2 framed, detected either by the
// ".gz"/".bz2" suffix or by magic bytes (§6 "Optional gzip framing").
func OpenArchive(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("download: open %s: %w", path, err)
	}

	br := bufio.NewReader(f)
	comp, err := DetectCompression(br)
	if err != nil {
		f.Close()
		return nil, err
	}
	if comp == Plain {
		switch {
		case strings.HasSuffix(path, ".gz"):
			comp = Gzip
		case strings.HasSuffix(path, ".bz2"):
			comp = Bzip2
		}
	}

	switch comp {
	case Gzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("download: gzip %s: %w", path, err)
		}
		return readCloser{Reader: gz, closer: f}, nil
	case Bzip2:
		return readCloser{Reader: bzip2.NewReader(br), closer: f}, nil
	default:
		return readCloser{Reader: br, closer: f}, nil
	}
}

// readCloser glues an incrementally-decoded Reader to the underlying
// file's Close, so callers get a single io.ReadCloser regardless of
// framing.
type readCloser struct {
	io.Reader
	closer io.Closer
}

func (r readCloser) Close() error { return r.closer.Close() }

// OpenArchiveString wraps a literal string body in a reader, applying the
// same sniffing logic as OpenArchive for the ipasndb "in-memory text"
// load path.
func OpenArchiveString(body string) (io.ReadCloser, error) {
	br := bufio.NewReader(strings.NewReader(body))
	comp, err := DetectCompression(br)
	if err != nil {
		return nil, err
	}
	switch comp {
	case Gzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("download: gzip string body: %w", err)
		}
		return io.NopCloser(gz), nil
	case Bzip2:
		return io.NopCloser(bzip2.NewReader(br)), nil
	default:
		return io.NopCloser(br), nil
	}
}
