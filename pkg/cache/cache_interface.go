package cache

import (
	"context"
	"time"
)

// Cache abstracts the cache layer so repositories can be tested with an
// in-memory implementation and so a Redis outage degrades to plain database
// reads instead of failures.
type Cache interface {
	// Get fetches a key and unmarshals it into dest. The boolean reports a
	// cache hit; on a miss dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies connectivity.
	Ping(ctx context.Context) error
}
