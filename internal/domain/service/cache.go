package service

import (
	"context"
	"time"
)

// Cache defines the interface for the read-through cache in front of the
// analytics and search queries. Misses are signalled by found=false, not by
// an error, so callers can always fall back to the database.
type Cache interface {
	// Get fetches the cached value for a key.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores a value with a TTL.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes a single key.
	Delete(ctx context.Context, key string) error

	// DeleteByPrefix removes every key sharing the prefix. Used to
	// invalidate a vendor's analytics entries after a rollup.
	DeleteByPrefix(ctx context.Context, prefix string) error
}
