package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/airaware/internal/aqi"
)

var (
	// ErrNotFound is returned when no snapshot is recorded for a location.
	ErrNotFound = errors.New("no aqi snapshots for location")
)

// Snapshot is the index of one location at the time a report was built.
type Snapshot struct {
	Timestamp time.Time      `json:"timestamp"`
	AQI       int            `json:"aqi"`
	Category  string         `json:"category"`
	Dominant  *aqi.Pollutant `json:"dominant_pollutant"`
	Source    string         `json:"source"`
}

// SnapshotHistory holds a time-ordered list of snapshots for a location.
type SnapshotHistory struct {
	Snapshots []Snapshot
}

// MemoryStore is a concurrency-safe in-memory snapshot store.
type MemoryStore struct {
	mu sync.RWMutex

	// key: location slug
	data map[string]*SnapshotHistory

	maxHistory int           // max snapshots per location, <= 0 is unlimited
	maxAge     time.Duration // max snapshot age, <= 0 is unlimited
	now        func() time.Time
}

// NewMemoryStore creates a MemoryStore with optional retention limits.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*SnapshotHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// WithClock replaces the clock used for age retention.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

// SaveSnapshot appends a snapshot for key and enforces retention.
// Snapshots are expected in non-decreasing timestamp order.
func (s *MemoryStore) SaveSnapshot(key string, snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[key]
	if !ok {
		history = &SnapshotHistory{}
		s.data[key] = history
	}

	history.Snapshots = append(history.Snapshots, snapshot)

	if s.maxHistory > 0 && len(history.Snapshots) > s.maxHistory {
		over := len(history.Snapshots) - s.maxHistory
		history.Snapshots = history.Snapshots[over:]
	}

	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		i := 0
		for ; i < len(history.Snapshots); i++ {
			if !history.Snapshots[i].Timestamp.Before(cutoff) {
				break
			}
		}
		history.Snapshots = history.Snapshots[i:]
	}
}

// GetLatest returns the most recent snapshot for key.
func (s *MemoryStore) GetLatest(key string) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[key]
	if !ok || len(history.Snapshots) == 0 {
		return Snapshot{}, ErrNotFound
	}
	return history.Snapshots[len(history.Snapshots)-1], nil
}

// GetRange returns the snapshots for key between from and to (inclusive).
func (s *MemoryStore) GetRange(key string, from, to time.Time) ([]Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[key]
	if !ok || len(history.Snapshots) == 0 {
		return nil, ErrNotFound
	}

	var result []Snapshot
	for _, snap := range history.Snapshots {
		if !snap.Timestamp.Before(from) && !snap.Timestamp.After(to) {
			result = append(result, snap)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}

	return result, nil
}
