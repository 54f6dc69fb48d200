package ports

import "context"

// Loader fetches a value from the source of truth on a cache miss.
type Loader func(ctx context.Context) ([]byte, error)

// Cache is a read-through cache with a fixed TTL. Values are serialized
// bytes; the cache never interprets them and is never the source of truth.
type Cache interface {
	// GetOrLoad returns the cached value for key, or runs loader, stores
	// the result, and returns it. A cache outage degrades to loading
	// directly; it never fails the read.
	GetOrLoad(ctx context.Context, key string, loader Loader) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Invalidate(ctx context.Context, keys ...string) error
}

// Cache key namespaces. Kept here so writers and readers agree on what to
// invalidate.
const (
	CacheKeyUserPrefix = "user:"
	CacheKeyAllUsers   = "users:all"
	CacheKeyTeamPrefix = "users:team:"
)
