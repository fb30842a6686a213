// Package cache provides byte-level caching for computed layouts and
// rendered artifacts.
//
// # Backends
//
//   - [FileCache]: sharded JSON files, used by the CLI
//   - [MemoryCache]: bounded in-process LRU, used by the HTTP server
//   - [RedisCache]: shared cache for multi-instance deployments
//   - [NullCache]: caching disabled
//
// # Keys
//
// A [Keyer] derives keys from content hashes and the options that affect
// the output, so a changed document, spacing or style never hits a stale
// entry:
//
//	k := cache.NewDefaultKeyer()
//	lk := k.LayoutKey(cache.Hash(doc), cache.LayoutKeyOpts{Spacing: s})
//	ak := k.ArtifactKey(cache.Hash(layoutJSON), cache.ArtifactKeyOpts{Format: "svg", Style: "simple"})
//
// Cache failures are never fatal to callers: a failed Get is a miss and a
// failed Set is logged and dropped.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache stores opaque byte values by key. Implementations are safe for
// concurrent use. A ttl <= 0 means the entry does not expire.
type Cache interface {
	// Get returns the value and true on a hit. Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key for ttl.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}
