// Package radixcache is an optional on-disk memoization layer for a
// loaded radix.Tree: it caches the tree's msgpack-encoded, snappy-
// compressed dump in a LevelDB database keyed by the source IPASN file's
// identity, so a repeated process start can skip re-parsing a large
// gzip'd text file. Grounded on the teacher's pkg/iporgdb LevelDB wrapper;
// purely ambient infrastructure, no bearing on C1's semantics.
package radixcache

import (
	"fmt"
	"os"
	"sync"

	"github.com/golang/snappy"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/ribasn/ribasn/pkg/radix"
)

// Error is the sentinel error type for this package.
type Error string

func (e Error) Error() string { return string(e) }

// ErrClosed is returned by any operation after Close.
const ErrClosed Error = "radixcache: closed"

// Cache wraps a LevelDB instance used purely as a key-value memoization
// store; one logical row per source file identity.
type Cache struct {
	db     *leveldb.DB
	mu     sync.RWMutex
	closed bool
}

// Open opens or creates a LevelDB database at path.
func Open(path string) (*Cache, error) {
	opts := &opt.Options{
		Compression: opt.SnappyCompression,
		WriteBuffer: 64 * 1024 * 1024,
	}
	db, err := leveldb.OpenFile(path, opts)
	if err != nil {
		return nil, fmt.Errorf("radixcache: open %s: %w", path, err)
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.closed = true
	return c.db.Close()
}

// sourceKey derives a cache key from a source file's path, size, and
// modification time: if any of those change, the cache entry is treated
// as stale and a fresh parse is required.
func sourceKey(path string, info os.FileInfo) []byte {
	return []byte(fmt.Sprintf("%s|%d|%d", path, info.Size(), info.ModTime().UnixNano()))
}

// Lookup returns the cached tree for path, if present and not stale
// (identity unchanged since it was cached).
func (c *Cache) Lookup(path string) (*radix.Tree, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, false, ErrClosed
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, false, fmt.Errorf("radixcache: stat %s: %w", path, err)
	}
	key := sourceKey(path, info)

	compressed, err := c.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("radixcache: get: %w", err)
	}

	blob, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, false, fmt.Errorf("radixcache: decompress: %w", err)
	}
	tree, err := radix.Load(blob)
	if err != nil {
		return nil, false, fmt.Errorf("radixcache: decode: %w", err)
	}
	return tree, true, nil
}

// Store caches tree's dump under path's current identity.
func (c *Cache) Store(path string, tree *radix.Tree) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("radixcache: stat %s: %w", path, err)
	}
	key := sourceKey(path, info)

	blob, err := tree.Dump()
	if err != nil {
		return fmt.Errorf("radixcache: dump: %w", err)
	}
	compressed := snappy.Encode(nil, blob)

	if err := c.db.Put(key, compressed, nil); err != nil {
		return fmt.Errorf("radixcache: put: %w", err)
	}
	return nil
}
