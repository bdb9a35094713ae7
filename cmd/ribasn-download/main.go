package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ribasn/ribasn/pkg/download"
)

const version = "1.0.0"

func main() {
	latest4 := flag.Bool("latest4", false, "Fetch the newest RouteViews IPv4 archive over FTP")
	latest6 := flag.Bool("latest6", false, "Fetch the newest RouteViews IPv6 archive over FTP")
	latest46 := flag.Bool("latest46", false, "Fetch the newest dual-stack RouteViews archive over FTP")
	datesFromFile := flag.String("dates-from-file", "", "Fetch archives for each YYYYMMDD date listed in this file, over HTTP")
	destDir := flag.String("dest", ".", "Destination directory for downloaded archives")
	rps := flag.Float64("rate", 2.0, "Max HTTP requests per second while scraping directory listings")
	showVersion := flag.Bool("version", false, "Show version")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ribasn-download version %s\n", version)
		return
	}

	switch {
	case *latest4, *latest6, *latest46:
		fam := selectFamily(*latest4, *latest6, *latest46)
		path, err := download.FetchLatestRouteViews(fam, *destDir)
		if err != nil {
			log.Fatalf("ERROR: %v", err)
		}
		fmt.Println(path)

	case *datesFromFile != "":
		runDatesFromFile(*datesFromFile, *destDir, *rps)

	default:
		fmt.Fprintln(os.Stderr, "Usage: ribasn-download --latest4|--latest6|--latest46 [--dest DIR]")
		fmt.Fprintln(os.Stderr, "       ribasn-download --dates-from-file FILE [--dest DIR] [--rate N]")
		os.Exit(1)
	}
}

func selectFamily(v4, v6, v46 bool) download.Family {
	switch {
	case v6:
		return download.IPv6
	case v46:
		return download.Dual
	default:
		return download.IPv4
	}
}

func runDatesFromFile(path, destDir string, rps float64) {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("ERROR: open %s: %v", path, err)
	}
	defer f.Close()

	dates, err := download.ParseDatesFile(f)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}

	fetcher := download.NewFetcher(destDir, rps)
	paths, err := fetcher.FetchDates(context.Background(), download.IPv4, dates, 4)
	for _, p := range paths {
		fmt.Println(p)
	}
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}
