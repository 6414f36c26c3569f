package cache

import (
	"context"
	"time"
)

// ScopedCache wraps a Cache with a key prefix so that several components
// can share one backend without collisions.
//
//	shapes := cache.Scoped(redis, "typescatter:shapes:")
type ScopedCache struct {
	inner  Cache
	prefix string
}

// Scoped returns a Cache that prefixes every key with prefix.
// A nil inner cache is replaced by a [NullCache].
func Scoped(inner Cache, prefix string) Cache {
	if inner == nil {
		inner = NewNullCache()
	}
	return &ScopedCache{inner: inner, prefix: prefix}
}

func (c *ScopedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.inner.Get(ctx, c.prefix+key)
}

func (c *ScopedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.inner.Set(ctx, c.prefix+key, data, ttl)
}

func (c *ScopedCache) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, c.prefix+key)
}

// Close closes the wrapped cache.
func (c *ScopedCache) Close() error { return c.inner.Close() }

var _ Cache = (*ScopedCache)(nil)
