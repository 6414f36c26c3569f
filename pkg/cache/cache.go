// Package cache provides byte-oriented caches for fetched assets.
//
// The decorative shape asset may live behind an http(s) URL. Fetching it on
// every process start is wasteful, so the raw bytes are stored in a [Cache]:
//
//   - [FileCache]: JSON entry files under the XDG cache dir (CLI default)
//   - [RedisCache]: shared cache for several server instances
//   - [NullCache]: caching disabled
//
// Use [Scoped] to namespace keys when several components share one backend.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is the expiry applied to cached assets when none is configured.
const DefaultTTL = 24 * time.Hour

// Cache stores opaque byte values with optional expiry.
type Cache interface {
	// Get returns the cached value and true on a hit. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
