// Package cache implements the read-through, TTL-bound cache in front of
// the user directory. Values are opaque serialized bytes with a fixed
// lifetime from write time; the cache is never the source of truth.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/task-management/internal/api/metrics"
	"github.com/taskforge/task-management/internal/core/ports"
)

// DefaultTTL matches the original deployment's one-hour entry lifetime.
const DefaultTTL = time.Hour

// ErrMiss is returned by a Store when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Store is the minimal key-value surface the cache needs. The production
// store is Redis; tests use the in-memory store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Cache is the read-through cache. A store outage degrades every read to a
// direct load; it never fails the caller.
type Cache struct {
	store  Store
	ttl    time.Duration
	logger zerolog.Logger
}

func New(store Store, ttl time.Duration, logger zerolog.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{store: store, ttl: ttl, logger: logger}
}

// GetOrLoad returns the cached value for key or, on miss, runs loader and
// populates the cache with its result before returning it. Loader errors
// propagate unchanged; store errors only cost the caching.
func (c *Cache) GetOrLoad(ctx context.Context, key string, loader ports.Loader) ([]byte, error) {
	value, err := c.store.Get(ctx, key)
	if err == nil {
		metrics.CacheRequestsTotal.WithLabelValues("hit").Inc()
		return value, nil
	}
	if !errors.Is(err, ErrMiss) {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache read failed, loading directly")
	}
	metrics.CacheRequestsTotal.WithLabelValues("miss").Inc()

	value, err = loader(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.store.Set(ctx, key, value, c.ttl); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return value, nil
}

// Put stores value under key with the configured TTL.
func (c *Cache) Put(ctx context.Context, key string, value []byte) error {
	return c.store.Set(ctx, key, value, c.ttl)
}

// Invalidate retires the given keys immediately.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	metrics.CacheInvalidationsTotal.Add(float64(len(keys)))
	return c.store.Del(ctx, keys...)
}
