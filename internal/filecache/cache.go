// Package filecache keeps recently served file bodies in memory so repeated
// GETs for the same document skip the disk.
package filecache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Options configure the cache behavior.
type Options struct {
	TTL             time.Duration
	CleanupInterval time.Duration
	// MaxEntryBytes keeps large downloads out of memory; bodies above the
	// limit are never cached.
	MaxEntryBytes int
}

// Cache is a TTL cache of file contents keyed by resolved path. A nil
// *Cache is valid and caches nothing.
type Cache struct {
	backend       *gocache.Cache
	maxEntryBytes int
}

// New builds a cache backed by go-cache.
func New(opts Options) *Cache {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	cleanup := opts.CleanupInterval
	if cleanup <= 0 {
		cleanup = ttl
	}
	maxEntry := opts.MaxEntryBytes
	if maxEntry <= 0 {
		maxEntry = 1 << 20
	}
	return &Cache{
		backend:       gocache.New(ttl, cleanup),
		maxEntryBytes: maxEntry,
	}
}

// Get returns the cached body for path.
func (c *Cache) Get(path string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.backend.Get(path)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

// Set stores body under path unless it exceeds the entry limit.
func (c *Cache) Set(path string, body []byte) {
	if c == nil || len(body) > c.maxEntryBytes {
		return
	}
	c.backend.Set(path, body, gocache.DefaultExpiration)
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.backend.ItemCount()
}
