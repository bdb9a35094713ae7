package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ribasn/ribasn/pkg/download"
	"github.com/ribasn/ribasn/pkg/emit"
	"github.com/ribasn/ribasn/pkg/mrt"
)

// bulkCmd converts every date in [start, end] for which a matching
// rib.YYYYMMDD.????.bz2 archive exists in the current directory
// (spec.md §6 "convert --bulk START END").
func bulkCmd(args []string) {
	fs := flag.NewFlagSet("--bulk", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: ribasn-convert --bulk START END  (dates as YYYYMMDD)")
		os.Exit(1)
	}

	start, err := time.Parse("20060102", fs.Arg(0))
	if err != nil {
		fatal("malformed start date %q: %v", fs.Arg(0), err)
	}
	end, err := time.Parse("20060102", fs.Arg(1))
	if err != nil {
		fatal("malformed end date %q: %v", fs.Arg(1), err)
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		ribPath, ok := findRIBForDate(d)
		if !ok {
			log.Printf("WARN: no archive for %s, skipping", d.Format("2006-01-02"))
			continue
		}
		outPath := fmt.Sprintf("ipasn_%s.dat", d.Format("20060102"))
		if err := convertOne(ribPath, outPath); err != nil {
			log.Printf("WARN: %s: %v", ribPath, err)
			continue
		}
		log.Printf("INFO: wrote %s", outPath)
	}
}

// findRIBForDate picks the first matching rib.YYYYMMDD.????.bz2 in the
// working directory: the lexicographically first match, which is the
// earliest HHMM snapshot of that day present.
func findRIBForDate(d time.Time) (string, bool) {
	pattern := fmt.Sprintf("rib.%s.????.bz2", d.Format("20060102"))
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return "", false
	}
	return matches[0], true
}

func convertOne(ribPath, outPath string) error {
	rc, err := download.OpenArchive(ribPath)
	if err != nil {
		return err
	}
	defer rc.Close()

	prefixes, err := mrt.ParseStream(rc, mrt.ParseOptions{SkipOnError: true})
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	now := time.Now()
	return emit.WriteIPASNTable(out, prefixes, ribPath, emit.Options{Now: &now})
}
