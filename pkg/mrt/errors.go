package mrt

// Error is the sentinel error type for this package, matching the
// teacher's pkg/model.Error pattern: a string constant implementing error.
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrShortRead is returned when a record header, body or attribute
	// block is truncated. When Reader.Next returns it, it is always fatal
	// and never downgraded by SkipOnError (§5); a truncation found while
	// FirstOriginAS decodes an entry's attributes is, like any origin
	// failure, skipped under SkipOnError.
	ErrShortRead Error = "mrt: short read"
	// ErrStructural covers an unrecognized record type/sub-type or an
	// internally-inconsistent attribute length.
	ErrStructural Error = "mrt: structural error"
	// ErrUnsupportedSegment is returned for an AS_PATH segment type
	// outside {AS_SET, AS_SEQUENCE, AS_CONFED_SEQUENCE, AS_CONFED_SET}.
	ErrUnsupportedSegment Error = "mrt: unsupported as-path segment type"
	// ErrNoOrigin is returned when an AS_PATH yields no non-bogus origin.
	ErrNoOrigin Error = "mrt: no non-bogus origin found"
)
