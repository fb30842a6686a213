package server

import (
	"context"

	"github.com/matzehuels/flowtower/internal/config"
	"github.com/matzehuels/flowtower/pkg/cache"
)

// NewCache returns the cache for the server: Redis when a URL is
// configured, otherwise a bounded in-memory LRU.
func NewCache(ctx context.Context, cfg config.Server) (cache.Cache, error) {
	if cfg.RedisURL != "" {
		c, err := cache.NewRedisCache(ctx, cache.RedisConfig{URL: cfg.RedisURL, Prefix: "flowtower:"})
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	c, err := cache.NewMemoryCache(cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// NewKeyer returns the cache keyer for the server. A configured scope
// prefixes every key; otherwise the runner's default keyer is used.
func NewKeyer(cfg config.Server) cache.Keyer {
	if cfg.CacheScope == "" {
		return nil
	}
	return cache.NewScopedKeyer(nil, cfg.CacheScope+":")
}
