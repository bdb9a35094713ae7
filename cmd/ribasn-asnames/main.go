package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ribasn/ribasn/pkg/asnames"
)

const version = "1.0.0"

func main() {
	input := flag.String("i", "", "Input HTML file with ASN names (fetches from the network if omitted)")
	output := flag.String("o", "", "Output JSON file (defaults to stdout)")
	showVersion := flag.Bool("version", false, "Show version")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ribasn-asnames version %s\n", version)
		return
	}

	var table asnames.Table
	var err error
	if *input != "" {
		f, openErr := os.Open(*input)
		if openErr != nil {
			log.Fatalf("ERROR: open %s: %v", *input, openErr)
		}
		defer f.Close()
		table, err = asnames.ParseHTML(f)
	} else {
		table, err = asnames.Fetch(context.Background(), "")
	}
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}

	// JSON object keys must be strings; asnames.Table is already keyed by
	// a numeric type, so remap to decimal-string keys per spec.md §6.
	asJSON := make(map[string]string, len(table))
	for asn, name := range table {
		asJSON[fmt.Sprintf("%d", asn)] = name
	}

	data, err := json.Marshal(asJSON)
	if err != nil {
		log.Fatalf("ERROR: marshal JSON: %v", err)
	}

	if *output == "" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(*output, data, 0644); err != nil {
		log.Fatalf("ERROR: write %s: %v", *output, err)
	}
}
