// Package cache defines the snapshot cache contract used by the leaderboard
// aggregator, plus in-memory and Redis implementations.
//
// Every operation is fallible and callers must treat failures as "cache
// empty": the cache is a performance optimization, never a correctness
// dependency.
package cache

import (
	"context"
	"time"
)

// Cache stores serialized view snapshots with a per-key TTL.
type Cache interface {
	// Get returns the value stored under key.
	// Returns ErrMiss when the key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// SetWithTTL stores value under key for the given lifetime.
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases underlying resources.
	Close() error
}
