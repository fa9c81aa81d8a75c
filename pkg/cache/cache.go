// Package cache provides the byte-oriented cache used for fetched documents
// and the triples extracted from them.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON envelope per key under a local directory (CLI default)
//   - [RedisCache]: shared cache for several server instances
//   - [NullCache]: caching disabled
//
// Keys are produced by a [Keyer] so that every backend sees the same key
// layout. Use [NewScopedKeyer] to isolate tenants or environments.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values per entry type.
const (
	// TTLDocument applies to raw documents fetched over HTTP.
	TTLDocument = time.Hour

	// TTLTriples applies to extracted triples. They are keyed by document
	// content hash, so they can outlive the document entry.
	TTLTriples = 24 * time.Hour
)

// Cache stores opaque byte values with an optional expiry.
//
// Get reports (nil, false, nil) for a miss. A ttl of 0 passed to Set
// means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by backends that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}
