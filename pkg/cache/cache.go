// Package cache provides the optional in-run memoization store used by the
// search engine.
//
// The search replays every state from the base topology for each candidate
// connection. With memoization enabled the replayed node configuration of a
// state is stored under a key derived from its ordered connection sequence,
// so the 30-odd candidates of one state share a single replay.
//
// Caches live for one run only. Nothing is persisted between runs.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values by key.
//
// Implementations must be safe for concurrent use: the search engine
// evaluates frontier states from several goroutines.
type Cache interface {
	// Get returns the value stored under key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
