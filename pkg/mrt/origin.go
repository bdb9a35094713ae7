package mrt

import "fmt"

// ParseOptions controls record/attribute decoding. The zero value is the
// strict default: full validation, no skip-on-error, and the original
// heuristic bogus-ASN upper bound.
type ParseOptions struct {
	// Fast stops attribute decoding as soon as AS_PATH has been found,
	// skipping any attributes that follow it in the wire order. Strict
	// and fast parsing MUST agree on the resulting origin (spec.md §9).
	Fast bool
	// SkipOnError downgrades per-record StructuralMrt/NoOrigin failures
	// to warnings and drops the record, instead of aborting the run.
	SkipOnError bool
	// BogusUpperBound is the configurable heuristic guard from
	// is_asn_bogus: any ASN >= this value is treated as bogus, in
	// addition to the fixed reserved range 64198-131071 and the
	// private-use range >= 4,200,000,000. The original pyasn hardcodes
	// this at 1,000,000; exposing it as policy rather than a constant
	// resolves spec.md §9's open question.
	BogusUpperBound uint32
}

// DefaultBogusUpperBound is the heuristic pyasn has used since 2014-11-02:
// any ASN this large or larger is well above the last allocated block and
// is treated as bogus for origin-selection purposes only.
const DefaultBogusUpperBound uint32 = 1_000_000

func (o ParseOptions) bogusUpperBound() uint32 {
	if o.BogusUpperBound == 0 {
		return DefaultBogusUpperBound
	}
	return o.BogusUpperBound
}

// IsBogusASN reports whether asn falls in the reserved/private-use range
// (64198-131071), the private-use-AS range (>=4,200,000,000), or above
// upperBound — never a legitimate route origin.
func IsBogusASN(asn uint32, upperBound uint32) bool {
	if asn >= 64198 && asn <= 131071 {
		return true
	}
	if asn >= 4_200_000_000 {
		return true
	}
	if asn >= upperBound {
		return true
	}
	return false
}

// Origin is the sum-typed result of origin-AS selection: either a single
// scalar ASN, or a non-empty set of ASNs recovered from a trailing AS_SET
// segment.
type Origin struct {
	Scalar uint32
	Set    []uint32 // non-nil iff this Origin is set-valued
}

// IsSet reports whether this Origin carries a set rather than a scalar.
func (o Origin) IsSet() bool { return o.Set != nil }

// Representative returns one ASN to stand in for the whole Origin: the
// scalar itself, or the smallest ASN in the set. Smallest-in-set is an
// arbitrary but deterministic tie-break (the original picks one "randomly"
// from Python's set iteration order; determinism here is a documented
// design decision, see DESIGN.md).
func (o Origin) Representative() uint32 {
	if !o.IsSet() {
		return o.Scalar
	}
	best := o.Set[0]
	for _, a := range o.Set[1:] {
		if a < best {
			best = a
		}
	}
	return best
}

// originAS implements the normative origin-selection algorithm (spec.md
// §4.5): the first segment must be AS_SEQUENCE; segments are visited in
// reverse; an AS_SEQUENCE yields the last non-zero, non-bogus ASN scanning
// backwards; an AS_SET yields every non-zero, non-bogus ASN; AS_CONFED_* segments
// are transparent and are skipped over. If a segment yields nothing
// (all its ASNs are bogus, or it's empty) the walk continues to the
// preceding segment.
func originAS(path ASPath, opts ParseOptions) (Origin, error) {
	if len(path.Segments) == 0 {
		return Origin{}, ErrNoOrigin
	}
	if path.Segments[0].Type != SegAS_SEQUENCE {
		return Origin{}, fmt.Errorf("%w: as-path does not start with AS_SEQUENCE", ErrStructural)
	}

	bound := opts.bogusUpperBound()
	for i := len(path.Segments) - 1; i >= 0; i-- {
		seg := path.Segments[i]
		switch seg.Type {
		case SegAS_SEQUENCE:
			for j := len(seg.ASNs) - 1; j >= 0; j-- {
				if seg.ASNs[j] != 0 && !IsBogusASN(seg.ASNs[j], bound) {
					return Origin{Scalar: seg.ASNs[j]}, nil
				}
			}
		case SegAS_SET:
			var survivors []uint32
			for _, asn := range seg.ASNs {
				if asn != 0 && !IsBogusASN(asn, bound) {
					survivors = append(survivors, asn)
				}
			}
			if len(survivors) > 0 {
				return Origin{Set: survivors}, nil
			}
		case SegAS_CONFED_SEQUENCE, SegAS_CONFED_SET:
			// transparent: fall through to the preceding segment
		default:
			return Origin{}, fmt.Errorf("%w: segment type %d", ErrUnsupportedSegment, seg.Type)
		}
	}
	return Origin{}, ErrNoOrigin
}
