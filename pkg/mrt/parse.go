package mrt

import (
	"errors"
	"fmt"
	"io"
	"log"
)

// ParseStream consumes every record from r, extracting the originating AS
// for each prefix-bearing record and accumulating the result into a
// PrefixMap (§2 "Data flow"). PEER_INDEX records are skipped; a repeated
// TDv2 prefix is logged as a warning and its first-seen origin retained
// (§9 "Open question... MUST preserve"); 0.0.0.0/0 and ::/0 are stripped
// from the result by default, matching the original converter.
func ParseStream(r io.Reader, opts ParseOptions) (*PrefixMap, error) {
	reader := NewReader(r, opts)
	prefixes := NewPrefixMap()

	for {
		rec, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			if opts.SkipOnError && isSkippable(err) {
				log.Printf("WARN: skipping record: %v", err)
				continue
			}
			return nil, err
		}

		if _, ok := rec.Detail.(PeerIndexRecord); ok {
			continue
		}

		prefix, ok := PrefixOf(rec)
		if !ok {
			continue
		}
		key := prefix.String()

		if prefixes.Has(key) {
			if rec.Type == TypeTableDumpV2 {
				was, _ := prefixes.Get(key)
				now, err := FirstOriginAS(rec, opts)
				if err == nil && !originsEqual(was, now) {
					log.Printf("WARN: repeated prefix %q maps to different origin (%v vs %v)", key, was, now)
				}
			}
			continue
		}

		origin, err := FirstOriginAS(rec, opts)
		if err != nil {
			if opts.SkipOnError {
				log.Printf("WARN: can't determine origin for prefix %q: %v", key, err)
				continue
			}
			return nil, fmt.Errorf("prefix %q: %w", key, err)
		}
		prefixes.Put(key, origin)
	}

	prefixes.Delete("0.0.0.0/0")
	prefixes.Delete("::/0")
	return prefixes, nil
}

func isSkippable(err error) bool {
	return errors.Is(err, ErrStructural) || errors.Is(err, ErrNoOrigin) || errors.Is(err, ErrUnsupportedSegment)
}

func originsEqual(a, b Origin) bool {
	if a.IsSet() != b.IsSet() {
		return false
	}
	if !a.IsSet() {
		return a.Scalar == b.Scalar
	}
	if len(a.Set) != len(b.Set) {
		return false
	}
	seen := make(map[uint32]bool, len(a.Set))
	for _, x := range a.Set {
		seen[x] = true
	}
	for _, x := range b.Set {
		if !seen[x] {
			return false
		}
	}
	return true
}
