package radixcache

import (
	"net/netip"
	"os"
	"path/filepath"
	"testing"

	"github.com/ribasn/ribasn/pkg/radix"
)

func mustAddr(t *testing.T, s string) netip.Addr {
	t.Helper()
	return netip.MustParseAddr(s)
}

func mustPrefix(t *testing.T, s string) radix.Prefix {
	t.Helper()
	p, err := radix.ParsePrefix(s)
	if err != nil {
		t.Fatalf("ParsePrefix(%q): %v", s, err)
	}
	return p
}

func TestLookupStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "source.txt")
	if err := os.WriteFile(sourcePath, []byte("1.0.0.0/24\t100\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	dbPath := filepath.Join(dir, "cache.db")
	cache, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer cache.Close()

	if _, hit, err := cache.Lookup(sourcePath); err != nil || hit {
		t.Fatalf("expected cache miss, got hit=%v err=%v", hit, err)
	}

	tree := radix.New()
	tree.Add(mustPrefix(t, "1.0.0.0/24"), 100)
	tree.AddSet(mustPrefix(t, "2.0.0.0/24"), []uint32{200, 201})

	if err := cache.Store(sourcePath, tree); err != nil {
		t.Fatalf("Store: %v", err)
	}

	loaded, hit, err := cache.Lookup(sourcePath)
	if err != nil || !hit {
		t.Fatalf("expected cache hit, got hit=%v err=%v", hit, err)
	}
	if loaded.Len() != tree.Len() {
		t.Fatalf("loaded tree has %d nodes, want %d", loaded.Len(), tree.Len())
	}
	got := loaded.SearchExact(mustAddr(t, "1.0.0.0"), 24)
	if got == nil || got.ASN != 100 {
		t.Fatalf("SearchExact(1.0.0.0/24) = %v, want ASN 100", got)
	}
}

func TestLookupStaleAfterModification(t *testing.T) {
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "source.txt")
	if err := os.WriteFile(sourcePath, []byte("1.0.0.0/24\t100\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	dbPath := filepath.Join(dir, "cache.db")
	cache, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer cache.Close()

	tree := radix.New()
	tree.Add(mustPrefix(t, "1.0.0.0/24"), 100)
	if err := cache.Store(sourcePath, tree); err != nil {
		t.Fatalf("Store: %v", err)
	}

	// Rewriting the source file changes its size/mtime identity, so the
	// old cache entry must no longer be considered a hit.
	if err := os.WriteFile(sourcePath, []byte("1.0.0.0/24\t100\nextra line to change size\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, hit, err := cache.Lookup(sourcePath); err != nil || hit {
		t.Fatalf("expected stale cache miss after modification, got hit=%v err=%v", hit, err)
	}
}

func TestOperationsAfterClose(t *testing.T) {
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "source.txt")
	os.WriteFile(sourcePath, []byte("1.0.0.0/24\t100\n"), 0644)

	cache, err := Open(filepath.Join(dir, "cache.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := cache.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, _, err := cache.Lookup(sourcePath); err != ErrClosed {
		t.Errorf("Lookup after close = %v, want ErrClosed", err)
	}
	if err := cache.Store(sourcePath, radix.New()); err != ErrClosed {
		t.Errorf("Store after close = %v, want ErrClosed", err)
	}
	if err := cache.Close(); err != ErrClosed {
		t.Errorf("double Close = %v, want ErrClosed", err)
	}
}
