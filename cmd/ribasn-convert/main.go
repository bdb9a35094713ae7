package main

import (
	"flag"
	"fmt"
	"log"
	"os"
)

const version = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "--single":
		singleCmd(os.Args[2:])
	case "--bulk":
		bulkCmd(os.Args[2:])
	case "--dump-screen":
		dumpScreenCmd(os.Args[2:])
	case "version", "-version", "--version":
		fmt.Printf("ribasn-convert version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`ribasn-convert - Decode RouteViews MRT archives into IPASN lookup tables

Usage:
  ribasn-convert --single RIB OUT [--no-progress] [--skip-on-error] [--compress]
  ribasn-convert --bulk START END
  ribasn-convert --dump-screen RIB [--record-from N] [--record-to N]
  ribasn-convert version
  ribasn-convert help

Examples:
  ribasn-convert --single rib.20240101.0600.bz2 ipasn_20240101.dat
  ribasn-convert --single rib.20240101.0600.bz2 ipasn_20240101.dat.gz --compress
  ribasn-convert --bulk 20240101 20240107
  ribasn-convert --dump-screen rib.20240101.0600.bz2 --record-from 0 --record-to 20`)
}

func fatal(format string, args ...any) {
	log.Fatalf("ERROR: "+format, args...)
}

func init() {
	// Keep flag's default usage from clobbering the subcommand-aware help above.
	flag.Usage = printUsage
}
