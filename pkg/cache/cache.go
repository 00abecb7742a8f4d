// Package cache provides byte caches for computed layouts and rendered
// artifacts.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: sha256-sharded JSON entries on disk, used by the CLI
//   - [RedisCache]: shared cache for the HTTP service
//   - [NullCache]: caching disabled
//
// Keys come from a [Keyer] so that every backend agrees on naming, and
// [ScopedKeyer] isolates tenants or profiles behind a prefix.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
