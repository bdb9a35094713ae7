// Package emit materializes a parsed prefix->origin map to the canonical
// IPASN text format (C6 in the design), the same format pkg/ipasndb reads
// back in.
package emit

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ribasn/ribasn/pkg/mrt"
)

// Options controls WriteIPASNTable's output.
type Options struct {
	// DumpSets writes every ASN in a set-valued origin, comma-separated,
	// instead of picking a single representative (debug use only, per
	// §4.6: "unless a debug flag requests set dumping").
	DumpSets bool
	// Now overrides the "Converted on" timestamp; nil uses time.Now.
	Now *time.Time
}

// WriteIPASNTable writes prefixes to w in the canonical IPASN text format:
// a fixed ASCII header block (source name, conversion time, v4/v6 counts)
// followed by one "<prefix>\t<asn>\n" line per entry, in prefixes'
// insertion order (= MRT stream arrival order, §4.6).
func WriteIPASNTable(w io.Writer, prefixes *mrt.PrefixMap, sourceName string, opts Options) error {
	n4, n6 := 0, 0
	prefixes.Range(func(prefix string, _ mrt.Origin) bool {
		if strings.Contains(prefix, ":") {
			n6++
		} else {
			n4++
		}
		return true
	})

	now := time.Now()
	if opts.Now != nil {
		now = *opts.Now
	}

	header := fmt.Sprintf(
		"; IP-ASN32-DAT file\n"+
			"; Original source: %s\n"+
			"; Converted on  : %s\n"+
			"; Prefixes-v4   : %d\n"+
			"; Prefixes-v6   : %d\n"+
			";\n",
		sourceName, now.Format(time.ANSIC), n4, n6)
	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("emit: write header: %w", err)
	}

	var werr error
	prefixes.Range(func(prefix string, origin mrt.Origin) bool {
		asnField := originField(origin, opts.DumpSets)
		if _, werr = fmt.Fprintf(w, "%s\t%s\n", prefix, asnField); werr != nil {
			return false
		}
		return true
	})
	if werr != nil {
		return fmt.Errorf("emit: write entry: %w", werr)
	}
	return nil
}

func originField(o mrt.Origin, dumpSets bool) string {
	if !o.IsSet() {
		return fmt.Sprintf("%d", o.Scalar)
	}
	if !dumpSets {
		return fmt.Sprintf("%d", o.Representative())
	}
	parts := make([]string, len(o.Set))
	for i, asn := range o.Set {
		parts[i] = fmt.Sprintf("%d", asn)
	}
	return strings.Join(parts, ",")
}
