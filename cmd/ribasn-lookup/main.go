package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/netip"
	"os"

	"github.com/ribasn/ribasn/pkg/ipasndb"
	"github.com/ribasn/ribasn/pkg/radix"
	"github.com/ribasn/ribasn/pkg/radixcache"
)

const version = "1.0.0"

func main() {
	tablePath := flag.String("table", "", "Path to an IPASN table file (text, optionally gzip/bzip2)")
	cacheDir := flag.String("cache", "", "Optional LevelDB cache directory for the parsed tree")
	jsonOutput := flag.Bool("json", true, "Output as JSON")
	showVersion := flag.Bool("version", false, "Show version")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ribasn-lookup version %s\n", version)
		return
	}

	if *tablePath == "" || flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: ribasn-lookup --table=FILE [options] <ip-address>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ribasn-lookup --table=ipasn.dat 8.8.8.8\n")
		fmt.Fprintf(os.Stderr, "  ribasn-lookup --table=ipasn.dat --cache=/data/ribasncache 2001:4860:4860::8888\n")
		os.Exit(1)
	}

	ipStr := flag.Arg(0)
	addr, err := netip.ParseAddr(ipStr)
	if err != nil {
		log.Fatalf("ERROR: invalid IP address %q: %v", ipStr, err)
	}

	tree, err := loadTree(*tablePath, *cacheDir)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}

	node := tree.SearchBestAddr(addr)
	if node == nil {
		if *jsonOutput {
			fmt.Printf("{\"error\":\"no matching prefix\",\"ip\":\"%s\"}\n", ipStr)
		} else {
			fmt.Printf("IP %s not found in table\n", ipStr)
		}
		os.Exit(1)
	}

	result := toResult(ipStr, node)
	if *jsonOutput {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatalf("ERROR: failed to marshal JSON: %v", err)
		}
		fmt.Println(string(data))
	} else {
		printHumanReadable(ipStr, result)
	}
}

func loadTree(tablePath, cacheDir string) (*radix.Tree, error) {
	if cacheDir == "" {
		tree, _, err := ipasndb.LoadPath(tablePath)
		return tree, err
	}

	cache, err := radixcache.Open(cacheDir)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	defer cache.Close()

	if tree, hit, err := cache.Lookup(tablePath); err == nil && hit {
		return tree, nil
	}

	tree, _, err := ipasndb.LoadPath(tablePath)
	if err != nil {
		return nil, err
	}
	if err := cache.Store(tablePath, tree); err != nil {
		log.Printf("WARN: failed to populate cache: %v", err)
	}
	return tree, nil
}

// lookupResult is the JSON/human-readable shape returned by a lookup.
type lookupResult struct {
	IP     string   `json:"ip"`
	Prefix string   `json:"prefix"`
	ASN    uint32   `json:"asn,omitempty"`
	ASNSet []uint32 `json:"asn_set,omitempty"`
}

func toResult(ip string, node *radix.Node) *lookupResult {
	return &lookupResult{
		IP:     ip,
		Prefix: node.Prefix.String(),
		ASN:    node.ASN,
		ASNSet: node.ASNSet,
	}
}

func printHumanReadable(ip string, result *lookupResult) {
	fmt.Printf("IP Address:   %s\n", ip)
	fmt.Printf("Prefix:       %s\n", result.Prefix)
	if len(result.ASNSet) > 0 {
		fmt.Printf("Origin ASNs:  %v (multi-origin)\n", result.ASNSet)
	} else {
		fmt.Printf("Origin ASN:   AS%d\n", result.ASN)
	}
}
