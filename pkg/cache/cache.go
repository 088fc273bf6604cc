// Package cache stores rendered diagram artifacts keyed by content hash.
//
// Rendering a diagram through Graphviz is the slowest thing the CLI and the
// preview server do, and the output depends only on the diagram document and
// the render options. The [Keyer] turns those into a stable key; a [Cache]
// backend keeps the bytes:
//
//   - [FileCache]: files under the user cache directory, for the CLI
//   - [RedisCache]: a shared redis instance, for the preview server
//   - [NullCache]: stores nothing, for --no-cache
//
// [GetOrCompute] wraps the usual lookup-or-render sequence. Cache events are
// reported to [observability.Cache] hooks.
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/visflow/pkg/observability"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// GetOrCompute returns the cached value for key, or calls compute, stores
// its result and returns it. The boolean reports a cache hit. A failing
// cache read is treated as a miss; a failing write is ignored.
func GetOrCompute(ctx context.Context, c Cache, key string, ttl time.Duration, compute func() ([]byte, error)) ([]byte, bool, error) {
	if data, ok, err := c.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}
	data, err := compute()
	if err != nil {
		return nil, false, err
	}
	_ = c.Set(ctx, key, data, ttl)
	return data, false, nil
}

// keyType returns the namespace of a key, the part before the first colon.
func keyType(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}

func reportGet(ctx context.Context, key string, hit bool) {
	if hit {
		observability.Cache().OnCacheHit(ctx, keyType(key))
		return
	}
	observability.Cache().OnCacheMiss(ctx, keyType(key))
}
