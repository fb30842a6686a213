package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMemoryEntries bounds a MemoryCache created with size <= 0.
const DefaultMemoryEntries = 512

// MemoryCache is a bounded in-process LRU cache. The least recently used
// entry is evicted once the size limit is reached.
type MemoryCache struct {
	entries *lru.Cache[string, cacheEntry]
	now     func() time.Time
}

// NewMemoryCache creates an LRU cache holding at most size entries.
func NewMemoryCache(size int) (*MemoryCache, error) {
	if size <= 0 {
		size = DefaultMemoryEntries
	}
	entries, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &MemoryCache{entries: entries, now: time.Now}, nil
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	entry, ok := c.entries.Get(key)
	if !ok {
		return nil, false, nil
	}
	if entry.expired(c.now()) {
		c.entries.Remove(key)
		return nil, false, nil
	}
	return entry.Data, true, nil
}

// Set stores a copy of data in the cache.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := cacheEntry{Data: append([]byte(nil), data...)}
	if ttl > 0 {
		entry.ExpiresAt = c.now().Add(ttl)
	}
	c.entries.Add(key, entry)
	return nil
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.entries.Remove(key)
	return nil
}

// Len returns the number of cached entries, including expired ones not yet
// evicted.
func (c *MemoryCache) Len() int { return c.entries.Len() }

// Close empties the cache.
func (c *MemoryCache) Close() error {
	c.entries.Purge()
	return nil
}

var _ Cache = (*MemoryCache)(nil)
