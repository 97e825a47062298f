// Package cache defines the key-value cache abstraction used for
// task-listing snapshots. Implementations must treat a missing key as a
// miss, not an error, so callers can fall back to the store of record.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. The boolean reports whether the key
	// was present; a miss returns (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Del removes the given keys. Missing keys are ignored.
	Del(ctx context.Context, keys ...string) error
}
