// Package cache holds the time-bounded caches that sit in front of every
// upstream fetch.
package cache

import (
	"context"
	"time"
)

// Cache maps a key to a value that is served only while it is younger than
// the cache TTL. Implementations must be safe for concurrent use.
type Cache[V any] interface {
	Get(ctx context.Context, key string) (V, bool)
	Put(ctx context.Context, key string, value V)
}

// Entry is a cached value with the time it was fetched.
type Entry[V any] struct {
	Value     V
	FetchedAt time.Time
}

// Fresh reports whether the entry is still inside the ttl window at now.
func (e Entry[V]) Fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.FetchedAt) < ttl
}
