package radix

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// entry is the on-wire record for one real node: enough to reconstruct it
// via a single Add/AddSet call. Mirrors the teacher's encodeRecord/
// decodeRecord pattern (pkg/iporgdb/db.go) but msgpack-encodes the whole
// prefix list as one blob rather than one LevelDB row per entry, matching
// the "pickle-like round trip" persistence contract of §6.
type entry struct {
	Family uint8
	Addr   []byte
	Len    int
	ASN    uint32
	ASNSet []uint32
}

// Dump serializes every real node in the tree to a msgpack blob suitable
// for Load. Iteration order follows Walk (unspecified across loads, stable
// within one).
func (t *Tree) Dump() ([]byte, error) {
	var entries []entry
	t.Walk(func(p Prefix, asn uint32, asnSet []uint32) {
		width := p.Family.Width()
		entries = append(entries, entry{
			Family: uint8(p.Family),
			Addr:   append([]byte(nil), p.Addr[:width]...),
			Len:    p.Len,
			ASN:    asn,
			ASNSet: asnSet,
		})
	})
	b, err := msgpack.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("radix: dump: %w", err)
	}
	return b, nil
}

// Load reconstructs a tree from a blob produced by Dump, by successive
// Add/AddSet calls (the teacher's pyasn __setstate__ equivalent).
func Load(blob []byte) (*Tree, error) {
	var entries []entry
	if err := msgpack.Unmarshal(blob, &entries); err != nil {
		return nil, fmt.Errorf("radix: load: %w", err)
	}
	t := New()
	for _, e := range entries {
		p := Prefix{Family: Family(e.Family), Len: e.Len}
		copy(p.Addr[:], e.Addr)
		if len(e.ASNSet) > 0 {
			t.AddSet(p, e.ASNSet)
		} else {
			t.Add(p, e.ASN)
		}
	}
	return t, nil
}
