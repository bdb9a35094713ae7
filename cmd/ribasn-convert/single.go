package main

import (
	"compress/gzip"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/ribasn/ribasn/pkg/download"
	"github.com/ribasn/ribasn/pkg/emit"
	"github.com/ribasn/ribasn/pkg/mrt"
)

func singleCmd(args []string) {
	fs := flag.NewFlagSet("--single", flag.ExitOnError)
	noProgress := fs.Bool("no-progress", false, "Suppress progress logging")
	skipOnError := fs.Bool("skip-on-error", false, "Downgrade per-record structural/no-origin errors to warnings")
	compress := fs.Bool("compress", false, "Gzip the output file")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: ribasn-convert --single RIB OUT [--no-progress] [--skip-on-error] [--compress]")
		os.Exit(1)
	}
	ribPath, outPath := fs.Arg(0), fs.Arg(1)

	rc, err := download.OpenArchive(ribPath)
	if err != nil {
		fatal("open %s: %v", ribPath, err)
	}
	defer rc.Close()

	r := progressReader{r: rc, quiet: *noProgress, label: ribPath}
	prefixes, err := mrt.ParseStream(&r, mrt.ParseOptions{SkipOnError: *skipOnError})
	if err != nil {
		fatal("convert %s: %v", ribPath, err)
	}
	if !*noProgress {
		log.Printf("INFO: decoded %d prefixes from %s", prefixes.Len(), ribPath)
	}

	out, err := os.Create(outPath)
	if err != nil {
		fatal("create %s: %v", outPath, err)
	}
	defer out.Close()

	var w io.Writer = out
	if *compress {
		gz := gzip.NewWriter(out)
		defer gz.Close()
		w = gz
	}

	now := time.Now()
	if err := emit.WriteIPASNTable(w, prefixes, ribPath, emit.Options{Now: &now}); err != nil {
		fatal("write %s: %v", outPath, err)
	}
	log.Printf("INFO: wrote %s", outPath)
}

// progressReader logs the number of megabytes read so far each time another
// progressInterval bytes have been read, unless quiet is set.
type progressReader struct {
	r       io.Reader
	quiet   bool
	label   string
	read    int64
	lastLog int64
}

const progressInterval = 16 * 1024 * 1024

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	p.read += int64(n)
	if !p.quiet && p.read-p.lastLog >= progressInterval {
		log.Printf("INFO: %s: %d MB read", p.label, p.read/(1024*1024))
		p.lastLog = p.read
	}
	return n, err
}
