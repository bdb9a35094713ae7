package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFetchDate_DirectoryScrapeAndDownload(t *testing.T) {
	const body = "archive contents"
	mux := http.NewServeMux()
	mux.HandleFunc("/bgpdata/2024.01/RIBS/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<a href="rib.20240115.0000.bz2">rib.20240115.0000.bz2</a>
<a href="rib.20240115.0600.bz2">rib.20240115.0600.bz2</a>
<a href="rib.20240115.1200.bz2">rib.20240115.1200.bz2</a>
`))
	})
	mux.HandleFunc("/bgpdata/2024.01/RIBS/rib.20240115.0600.bz2", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	dir := t.TempDir()
	f := NewFetcher(dir, 100)
	f.baseURL = srv.URL

	_, filename, err := f.FindRIBForDate(context.Background(), IPv4, 2024, 1, 15)
	if err != nil {
		t.Fatalf("FindRIBForDate: %v", err)
	}
	if filename != "rib.20240115.0600.bz2" {
		t.Fatalf("expected the 0600 snapshot preferred, got %q", filename)
	}

	path, err := f.FetchDate(context.Background(), IPv4, 2024, 1, 15)
	if err != nil {
		t.Fatalf("FetchDate: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != body {
		t.Fatalf("downloaded %q, want %q", got, body)
	}
}

func TestFetchDates_Concurrent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/bgpdata/2024.01/RIBS/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<a href="rib.20240110.0600.bz2">rib.20240110.0600.bz2</a>
<a href="rib.20240111.0600.bz2">rib.20240111.0600.bz2</a>
`))
	})
	mux.HandleFunc("/bgpdata/2024.01/RIBS/rib.20240110.0600.bz2", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("a"))
	})
	mux.HandleFunc("/bgpdata/2024.01/RIBS/rib.20240111.0600.bz2", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("b"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	dir := t.TempDir()
	f := NewFetcher(dir, 100)
	f.baseURL = srv.URL

	dates := []time.Time{
		time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC),
	}
	paths, err := f.FetchDates(context.Background(), IPv4, dates, 4)
	if err != nil {
		t.Fatalf("FetchDates: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("got %d paths, want 2: %v", len(paths), paths)
	}
	for _, p := range paths {
		if _, err := os.Stat(filepath.Join(dir, filepath.Base(p))); err != nil {
			t.Errorf("expected file to exist: %v", err)
		}
	}
}
