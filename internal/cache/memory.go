package cache

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process Cache. Stale entries are kept until overwritten by
// the next successful fetch; maxEntries > 0 bounds the key space by evicting
// the entry with the oldest fetch time.
type Memory[V any] struct {
	mu sync.Mutex

	entries    map[string]Entry[V]
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewMemory creates a Memory cache. A nil now uses time.Now.
func NewMemory[V any](ttl time.Duration, maxEntries int, now func() time.Time) *Memory[V] {
	if now == nil {
		now = time.Now
	}
	return &Memory[V]{
		entries:    make(map[string]Entry[V]),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        now,
	}
}

// Get returns the value for key if it is still fresh.
func (m *Memory[V]) Get(_ context.Context, key string) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok || !e.Fresh(m.now(), m.ttl) {
		var zero V
		return zero, false
	}
	return e.Value, true
}

// Put stores value under key, stamped with the current time.
func (m *Memory[V]) Put(_ context.Context, key string, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = Entry[V]{Value: value, FetchedAt: m.now()}
	m.evictLocked()
}

// Len returns the number of stored entries, stale ones included.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory[V]) evictLocked() {
	if m.maxEntries <= 0 {
		return
	}
	for len(m.entries) > m.maxEntries {
		var (
			oldestKey string
			oldest    time.Time
			first     = true
		)
		for k, e := range m.entries {
			if first || e.FetchedAt.Before(oldest) {
				oldestKey, oldest, first = k, e.FetchedAt, false
			}
		}
		delete(m.entries, oldestKey)
	}
}

var _ Cache[int] = (*Memory[int])(nil)
