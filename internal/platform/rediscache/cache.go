// Package rediscache provides the Redis-backed implementation of the
// cache.Cache interface used for task-listing snapshots. It distinguishes
// cache misses from transport errors so callers can treat a miss as a
// normal control-flow outcome.
package rediscache

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/phrazzld/taskboard-api/internal/cache"
)

// ErrNilClient is returned when the provider is constructed without a client.
var ErrNilClient = errors.New("rediscache: nil client")

// RedisCache implements cache.Cache on top of a go-redis universal client.
type RedisCache struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

// Ensure RedisCache implements cache.Cache
var _ cache.Cache = (*RedisCache)(nil)

// Config holds the construction options for a RedisCache.
type Config struct {
	Client goredis.UniversalClient
	// CloseClient should be true only if this cache exclusively owns the client.
	CloseClient bool
}

// New creates a RedisCache around an already-connected client.
func New(cfg Config) (*RedisCache, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &RedisCache{rdb: cfg.Client, closeClient: cfg.CloseClient}, nil
}

// Get returns the cached value for key. The second return value reports
// whether the key was present; a miss is not an error.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, err // transport/server error
	}
	return b, true, nil
}

// Set stores value under key with the given TTL. Non-positive TTLs are
// treated as "no expiry".
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = 0
	}
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// Del removes the given keys. Deleting a missing key is not an error.
func (c *RedisCache) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// Close releases the underlying client only when this cache owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (c *RedisCache) Close() error {
	if c.closeClient {
		if err := c.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
