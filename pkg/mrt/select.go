package mrt

import "fmt"

// FirstOriginAS returns the originating AS for rec, per §4.4's "first-entry
// shortcut": for TDv2 RIB records only entry 0's attributes are consulted,
// even if opts.Fast is false and all entries were decoded.
func FirstOriginAS(rec *Record, opts ParseOptions) (Origin, error) {
	var attrs []Attribute
	var err error

	switch d := rec.Detail.(type) {
	case TDv1Record:
		attrs, err = d.decodeAttrs(opts)
	case RIBRecord:
		if len(d.Entries) == 0 {
			return Origin{}, fmt.Errorf("%w: RIB record has no entries", ErrNoOrigin)
		}
		entry := &d.Entries[0]
		attrs, err = entry.decodeAttrs(opts)
	default:
		return Origin{}, fmt.Errorf("%w: record has no AS_PATH-bearing entry", ErrStructural)
	}
	if err != nil {
		return Origin{}, err
	}

	attr, ok := findASPath(attrs)
	if !ok {
		return Origin{}, ErrNoOrigin
	}
	asnWidth := 4
	if rec.Type == TypeTableDump {
		asnWidth = 2
	}
	path, err := decodeASPath(attr.Data, asnWidth)
	if err != nil {
		return Origin{}, err
	}
	return originAS(path, opts)
}

// PrefixOf returns the prefix this record carries (TDv1/RIB only).
func PrefixOf(rec *Record) (Prefix, bool) {
	switch d := rec.Detail.(type) {
	case TDv1Record:
		return d.Prefix, true
	case RIBRecord:
		return d.Prefix, true
	default:
		return Prefix{}, false
	}
}
