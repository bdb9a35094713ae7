// Package asnames extracts the public ASN-to-organization-name mapping
// published as cidr-report.org's autnums.html listing.
package asnames

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	SourceURL        = "http://www.cidr-report.org/as2.0/autnums.html"
	DefaultUserAgent = "github.com/ribasn/ribasn/asnames-client"

	// MissingName is substituted when an ASN has no entry in the table.
	MissingName = "unknown"
)

// asnameLinePattern extracts the ASN code and its name from one
// "<a href=...>ASnnn </a> Org Name" listing line.
var asnameLinePattern = regexp.MustCompile(`<a [^>]+>AS(\d+)\s*</a>\s*(.*)`)

// Table is the parsed ASN-to-name mapping.
type Table map[uint32]string

// Name returns the organization name for asn, or MissingName if the ASN
// has no entry in the table.
func (t Table) Name(asn uint32) string {
	if name, ok := t[asn]; ok {
		return name
	}
	return MissingName
}

// ParseHTML parses an autnums.html document into a Table.
func ParseHTML(r io.Reader) (Table, error) {
	table := make(Table)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "<a") {
			continue
		}
		m := asnameLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		asn, err := strconv.ParseUint(m[1], 10, 32)
		if err != nil {
			continue
		}
		table[uint32(asn)] = strings.TrimSpace(m[2])
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("asnames: scan html: %w", err)
	}
	return table, nil
}

// Fetch downloads and parses the live autnums.html listing. The source
// is served as Latin-1; Go's byte-oriented regexp matching treats it as
// opaque bytes and only the ASCII "<a href" anchor/ASnnn structure needs
// to match, so no explicit transcoding is required before parsing.
func Fetch(ctx context.Context, userAgent string) (Table, error) {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	req, err := http.NewRequestWithContext(ctx, "GET", SourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("asnames: build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	client := &http.Client{Timeout: 2 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("asnames: fetch %s: %w", SourceURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("asnames: fetch %s: status %d", SourceURL, resp.StatusCode)
	}
	return ParseHTML(resp.Body)
}
