package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultUserAgent = "github.com/ribasn/ribasn/download-client"
	DefaultHTTPBase  = "https://archive.routeviews.org"
	MaxRetries       = 3
	RetryDelay       = 5 * time.Second
)

// ribFilenamePattern matches "rib.YYYYMMDD.HHMM" directory-listing entries,
// grouping the date and the HHMM snapshot time.
var ribFilenamePattern = regexp.MustCompile(`rib\.(\d{8})\.(\d{4})`)

// snapshotPriority orders same-day snapshots: 0600 is preferred (matches
// find_latest's preference in pyasn_util_download.py), 0500 next, then
// anything else, with 0000 as the last resort.
func snapshotPriority(hhmm string) int {
	switch hhmm {
	case "0600":
		return 0
	case "0500":
		return 1
	case "0000":
		return 3
	default:
		return 2
	}
}

// Fetcher retrieves RouteViews RIB archives over HTTP (skipping the GET
// when the file already exists locally) with rate-limited directory
// scraping, mirroring the ambient
// atomic-download pattern used for iptoasn's HTTP source.
type Fetcher struct {
	client    *http.Client
	userAgent string
	baseURL   string
	destDir   string
	limiter   *rate.Limiter
}

// NewFetcher builds a Fetcher that writes downloaded archives under destDir.
// The limiter bounds the rate of HTTP requests issued while scraping
// RouteViews directory listings across many dates.
func NewFetcher(destDir string, requestsPerSecond float64) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: 5 * time.Minute},
		userAgent: DefaultUserAgent,
		baseURL:   DefaultHTTPBase,
		destDir:   destDir,
		limiter:   newLimiter(requestsPerSecond),
	}
}

// FindRIBForDate scrapes the RouteViews directory listing for the given
// date (in archive.routeviews.org/bgpdata/YYYY.MM/RIBS/ layout) and
// returns the best-matching filename, preferring the 06:00 snapshot.
func (f *Fetcher) FindRIBForDate(ctx context.Context, fam Family, year, month, day int) (dirURL, filename string, err error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", "", err
	}

	root := httpArchiveRoot(fam)
	dirURL = fmt.Sprintf("%s/%s/%04d.%02d/RIBS/", f.baseURL, root, year, month)

	req, err := http.NewRequestWithContext(ctx, "GET", dirURL, nil)
	if err != nil {
		return "", "", fmt.Errorf("download: build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("download: fetch listing %s: %w", dirURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("download: listing %s: status %d", dirURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("download: read listing %s: %w", dirURL, err)
	}

	wantDate := fmt.Sprintf("%04d%02d%02d", year, month, day)
	matches := ribFilenamePattern.FindAllStringSubmatch(string(body), -1)

	var candidates []string
	for _, m := range matches {
		if m[1] == wantDate {
			candidates = append(candidates, fmt.Sprintf("rib.%s.%s.bz2", m[1], m[2]))
		}
	}
	if len(candidates) == 0 {
		return "", "", ErrNoArchiveFound
	}
	sort.Slice(candidates, func(i, j int) bool {
		return snapshotPriority(candidates[i][13:17]) < snapshotPriority(candidates[j][13:17])
	})
	return dirURL, candidates[0], nil
}

// FetchDate downloads the RIB archive for a single date, writing it into
// destDir via a temp-file-then-rename so partial downloads never leave a
// corrupt file at the final path.
func (f *Fetcher) FetchDate(ctx context.Context, fam Family, year, month, day int) (string, error) {
	dirURL, filename, err := f.FindRIBForDate(ctx, fam, year, month, day)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(f.destDir, 0755); err != nil {
		return "", fmt.Errorf("download: create dest dir: %w", err)
	}

	fileURL := dirURL + filename
	finalPath := filepath.Join(f.destDir, filename)
	if _, err := os.Stat(finalPath); err == nil {
		return finalPath, nil
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	var resp *http.Response
	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, "GET", fileURL, nil)
		if err != nil {
			return "", fmt.Errorf("download: build request: %w", err)
		}
		req.Header.Set("User-Agent", f.userAgent)

		resp, lastErr = f.client.Do(req)
		if lastErr == nil && resp.StatusCode == http.StatusOK {
			break
		}
		if resp != nil {
			resp.Body.Close()
		}
		if attempt < MaxRetries-1 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(RetryDelay):
			}
		}
	}
	if lastErr != nil {
		return "", fmt.Errorf("download: fetch %s after %d retries: %w", fileURL, MaxRetries, lastErr)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download: fetch %s: status %d", fileURL, resp.StatusCode)
	}

	tempPath := finalPath + ".tmp"
	tempFile, err := os.Create(tempPath)
	if err != nil {
		return "", fmt.Errorf("download: create temp file: %w", err)
	}
	defer func() {
		tempFile.Close()
		os.Remove(tempPath)
	}()

	if _, err := io.Copy(tempFile, resp.Body); err != nil {
		return "", fmt.Errorf("download: write %s: %w", fileURL, err)
	}
	tempFile.Close()

	if err := os.Rename(tempPath, finalPath); err != nil {
		return "", fmt.Errorf("download: rename into place: %w", err)
	}
	return finalPath, nil
}

// FetchDates downloads archives for every date in dates, using up to
// maxWorkers concurrent fetches sharing the Fetcher's rate limiter, and
// returns the paths successfully fetched (in input order) along with the
// first error encountered, if any. Concurrency lets a large
// --dates-from-file batch overlap directory scraping and downloads
// instead of doing both serially per date.
func (f *Fetcher) FetchDates(ctx context.Context, fam Family, dates []time.Time, maxWorkers int) ([]string, error) {
	args := make([]dateArg, len(dates))
	for i, d := range dates {
		args[i] = dateArg{year: d.Year(), month: int(d.Month()), day: d.Day()}
	}

	outcomes := concurrentFetchDates(ctx, f, fam, args, maxWorkers)

	var paths []string
	var firstErr error
	for i, o := range outcomes {
		if o.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("download: date %s: %w", dates[i].Format("2006-01-02"), o.err)
			}
			continue
		}
		paths = append(paths, o.path)
	}
	return paths, firstErr
}

func httpArchiveRoot(f Family) string {
	switch f {
	case IPv6:
		return "route-views6/bgpdata"
	case Dual:
		return "route-views4/bgpdata"
	default:
		return "bgpdata"
	}
}
