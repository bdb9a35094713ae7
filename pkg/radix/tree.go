// Package radix implements the dual-family (IPv4/IPv6) longest-prefix-match
// binary patricia trie used by the IP→ASN lookup engine.
//
// The tree keeps two entirely separate roots, one per family, so a /0
// inserted on one side can never be consulted for a lookup on the other
// (§4.1 "Family separation"). After construction, concurrent lookups from
// any number of goroutines are safe without locking, matching nodes are
// never mutated in place by a lookup. Add/AddSet are not safe to run
// concurrently with lookups or with each other; callers serialize those
// externally (§5 "Mutability").
package radix

import "net/netip"

// Tree is a dual-family longest-prefix-match radix tree.
type Tree struct {
	roots [2]*node // indexed by family: 0 => v4, 1 => v6
}

// New returns an empty tree.
func New() *Tree { return &Tree{} }

func familyIndex(f Family) int {
	if f == V4 {
		return 0
	}
	return 1
}

func (t *Tree) rootSlot(f Family) **node { return &t.roots[familyIndex(f)] }

// Node is the borrowed view returned by lookups: the prefix and the ASN(s)
// that originate it. Callers must not retain it across a subsequent Add/AddSet.
type Node struct {
	Prefix Prefix
	ASN    uint32
	ASNSet []uint32 // non-nil iff the origin was recorded as a set
}

// Add inserts prefix with the given scalar ASN, creating it if absent or
// updating it in place if already present (idempotent).
func (t *Tree) Add(p Prefix, asn uint32) *Node {
	n := t.insert(p)
	n.real = true
	n.asn = asn
	n.asnSet = nil
	return t.view(p.Family, n)
}

// AddSet inserts prefix with a set-valued origin (AS_SET survivors).
func (t *Tree) AddSet(p Prefix, asns []uint32) *Node {
	n := t.insert(p)
	n.real = true
	n.asn = 0
	n.asnSet = append([]uint32(nil), asns...)
	return t.view(p.Family, n)
}

func (t *Tree) view(f Family, n *node) *Node {
	if n == nil || !n.real {
		return nil
	}
	return &Node{
		Prefix: Prefix{Family: f, Addr: n.bits, Len: n.len},
		ASN:    n.asn,
		ASNSet: n.asnSet,
	}
}

// insert walks/builds the trie for p.Family and returns the (possibly new)
// node labeled exactly p.Canon(), splitting or creating glue nodes as
// needed. The switch below covers the four cases: exact label match,
// descend into a child, insert p above the current node, or split both
// under a glue node.
func (t *Tree) insert(p Prefix) *node {
	p = p.Canon()
	width := p.Family.Width()
	bits := p.Addr[:width]
	slot := t.rootSlot(p.Family)

	for {
		cur := *slot
		if cur == nil {
			n := newNode(bits, p.Len, false, 0)
			*slot = n
			return n
		}

		cpl := commonPrefixLen(cur.bits[:width], bits, min(cur.len, p.Len))

		switch {
		case cpl == cur.len && cpl == p.Len:
			// Exact match on an existing label.
			return cur

		case cpl == cur.len && cpl < p.Len:
			// cur's label is a strict prefix of p; descend.
			bit := bitAt(bits, cpl)
			if cur.children[bit] == nil {
				cur.children[bit] = newNode(bits, p.Len, false, 0)
				return cur.children[bit]
			}
			slot = &cur.children[bit]
			continue

		case cpl == p.Len && cpl < cur.len:
			// p is a strict prefix of cur's label: insert p above cur.
			mid := newNode(bits, p.Len, false, 0)
			bit := bitAt(cur.bits[:width], cpl)
			mid.children[bit] = cur
			*slot = mid
			return mid

		default:
			// Neither contains the other: split with a glue node at cpl.
			glue := newNode(bits, cpl, false, 0)
			bitCur := bitAt(cur.bits[:width], cpl)
			bitNew := bitAt(bits, cpl)
			newLeaf := newNode(bits, p.Len, false, 0)
			glue.children[bitCur] = cur
			glue.children[bitNew] = newLeaf
			*slot = glue
			return newLeaf
		}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// SearchExact returns the real node labeled exactly addr/length, or nil.
func (t *Tree) SearchExact(addr netip.Addr, length int) *Node {
	p := PrefixFromAddr(addr, length)
	width := p.Family.Width()
	bits := p.Addr[:width]
	cur := *t.rootSlot(p.Family)

	for cur != nil {
		cpl := commonPrefixLen(cur.bits[:width], bits, min(cur.len, p.Len))
		if cpl != cur.len {
			return nil
		}
		if cur.len == p.Len {
			return t.view(p.Family, cur)
		}
		cur = cur.children[bitAt(bits, cur.len)]
	}
	return nil
}

// SearchBest performs longest-prefix-match lookup for addr, optionally
// bounded to the first length bits (full family width if omitted via
// SearchBestAddr). Returns nil if no covering entry exists (§7 LookupMiss
// is surfaced as a nil result, not an error).
func (t *Tree) SearchBest(addr netip.Addr, length int) *Node {
	p := PrefixFromAddr(addr, length)
	width := p.Family.Width()
	bits := p.Addr[:width]
	cur := *t.rootSlot(p.Family)

	var best *node
	for cur != nil {
		cpl := commonPrefixLen(cur.bits[:width], bits, min(cur.len, p.Len))
		if cpl != cur.len {
			break
		}
		if cur.real {
			best = cur
		}
		if cur.len >= p.Len {
			break
		}
		cur = cur.children[bitAt(bits, cur.len)]
	}
	if best == nil {
		return nil
	}
	return t.view(p.Family, best)
}

// SearchBestAddr looks up addr using the full width of its family.
func (t *Tree) SearchBestAddr(addr netip.Addr) *Node {
	width := 32
	if addr.Is6() && !addr.Is4In6() {
		width = 128
	}
	return t.SearchBest(addr, width)
}

// Prefixes returns every real node's canonical textual prefix. Order is
// unspecified across loads but stable within one (§5 "Ordering
// guarantees").
func (t *Tree) Prefixes() []string {
	var out []string
	for fi, root := range t.roots {
		f := V4
		if fi == 1 {
			f = V6
		}
		walk(root, f, func(n *node) {
			if n.real {
				out = append(out, Prefix{Family: f, Addr: n.bits, Len: n.len}.String())
			}
		})
	}
	return out
}

// Walk invokes fn for every real node in the tree (both families), passing
// its canonical Prefix, scalar ASN and (if set-valued) ASN set.
func (t *Tree) Walk(fn func(p Prefix, asn uint32, asnSet []uint32)) {
	for fi, root := range t.roots {
		f := V4
		if fi == 1 {
			f = V6
		}
		walk(root, f, func(n *node) {
			if n.real {
				fn(Prefix{Family: f, Addr: n.bits, Len: n.len}, n.asn, n.asnSet)
			}
		})
	}
}

func walk(n *node, f Family, fn func(*node)) {
	if n == nil {
		return
	}
	fn(n)
	walk(n.children[0], f, fn)
	walk(n.children[1], f, fn)
}

// Len returns the number of real (inserted) prefixes across both families.
func (t *Tree) Len() int {
	n := 0
	t.Walk(func(Prefix, uint32, []uint32) { n++ })
	return n
}
