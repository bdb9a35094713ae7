// Package ipasndb loads the compact IPASN text table ("PREFIX/LEN<TAB>ASN"
// per line, comments and blanks skipped) into a radix.Tree (C2 in the
// design: the mirror image of pkg/emit, which writes this same format).
package ipasndb

import (
	"bufio"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/ribasn/ribasn/pkg/download"
	"github.com/ribasn/ribasn/pkg/radix"
)

// Error is the sentinel error type for this package, matching the
// teacher's pkg/model.Error pattern.
type Error string

func (e Error) Error() string { return string(e) }

// ErrMalformedLine is logged (with line number and text) for any
// non-blank, non-comment line that doesn't parse as "prefix<WS+>asn"; the
// line is counted in Stats.Rejected and loading continues.
const ErrMalformedLine Error = "malformed ipasndb line"

// Stats reports what LoadPath/LoadString did, split by family, mirroring
// the Prefixes-v4/Prefixes-v6 counts the emitter writes into its header.
type Stats struct {
	V4       int
	V6       int
	Rejected int // lines skipped with a diagnostic, run continues
}

func (s Stats) Total() int { return s.V4 + s.V6 }

// LoadPath reads the IPASN table at path (optionally gzip or bzip2
// framed, per the shared download.OpenArchive sniffing) into a new tree.
func LoadPath(path string) (*radix.Tree, Stats, error) {
	rc, err := download.OpenArchive(path)
	if err != nil {
		return nil, Stats{}, err
	}
	defer rc.Close()
	return load(bufio.NewScanner(rc))
}

// LoadString parses text (optionally gzip/bzip2 framed) directly, for
// callers that already hold the IPASN table in memory.
func LoadString(text string) (*radix.Tree, Stats, error) {
	rc, err := download.OpenArchiveString(text)
	if err != nil {
		return nil, Stats{}, err
	}
	defer rc.Close()
	return load(bufio.NewScanner(rc))
}

func load(sc *bufio.Scanner) (*radix.Tree, Stats, error) {
	tree := radix.New()
	var stats Stats
	reject := func(lineNo int, line string) {
		stats.Rejected++
		log.Printf("WARN: %v at line %d: %q", ErrMalformedLine, lineNo, line)
	}

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if trimmed[0] == '#' || trimmed[0] == ';' {
			continue
		}

		fields := strings.Fields(trimmed)
		if len(fields) != 2 {
			reject(lineNo, trimmed)
			continue
		}

		p, err := radix.ParsePrefix(fields[0])
		if err != nil {
			reject(lineNo, trimmed)
			continue
		}
		asn, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			reject(lineNo, trimmed)
			continue
		}

		tree.Add(p, uint32(asn)) // duplicates: last wins (contrast mrt.PrefixMap's first-wins)
		if p.Family == radix.V4 {
			stats.V4++
		} else {
			stats.V6++
		}
	}
	if err := sc.Err(); err != nil {
		return nil, stats, fmt.Errorf("ipasndb: read: %w", err)
	}
	return tree, stats, nil
}
