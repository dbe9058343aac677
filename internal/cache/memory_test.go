package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 11, 3, 9, 15, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemoryPutThenGetWithinTTL(t *testing.T) {
	clock := newFakeClock()
	c := NewMemory[string](30*time.Minute, 0, clock.Now)
	ctx := context.Background()

	c.Put(ctx, "openaq_Delhi", "payload")
	clock.Advance(29 * time.Minute)

	v, ok := c.Get(ctx, "openaq_Delhi")
	require.True(t, ok)
	require.Equal(t, "payload", v)
}

func TestMemoryExpiredEntryIsMiss(t *testing.T) {
	clock := newFakeClock()
	c := NewMemory[string](30*time.Minute, 0, clock.Now)
	ctx := context.Background()

	c.Put(ctx, "k", "v")
	clock.Advance(30 * time.Minute)

	_, ok := c.Get(ctx, "k")
	require.False(t, ok)
	require.Equal(t, 1, c.Len(), "stale entries are kept until overwritten")

	c.Put(ctx, "k", "v2")
	v, ok := c.Get(ctx, "k")
	require.True(t, ok)
	require.Equal(t, "v2", v)
}

func TestMemoryMissingKey(t *testing.T) {
	c := NewMemory[int](time.Minute, 0, nil)
	v, ok := c.Get(context.Background(), "nope")
	require.False(t, ok)
	require.Zero(t, v)
}

func TestMemoryEvictsOldestWhenBounded(t *testing.T) {
	clock := newFakeClock()
	c := NewMemory[int](time.Hour, 2, clock.Now)
	ctx := context.Background()

	c.Put(ctx, "a", 1)
	clock.Advance(time.Second)
	c.Put(ctx, "b", 2)
	clock.Advance(time.Second)
	c.Put(ctx, "c", 3)

	require.Equal(t, 2, c.Len())
	_, ok := c.Get(ctx, "a")
	require.False(t, ok)
	_, ok = c.Get(ctx, "c")
	require.True(t, ok)
}

func TestLoaderCachesOnlySuccess(t *testing.T) {
	clock := newFakeClock()
	l := NewLoader[string](NewMemory[string](time.Minute, 0, clock.Now))
	ctx := context.Background()

	var calls int
	failing := func(context.Context) (string, error) {
		calls++
		return "", errors.New("upstream down")
	}

	_, _, err := l.Load(ctx, "k", failing)
	require.Error(t, err)
	_, _, err = l.Load(ctx, "k", failing)
	require.Error(t, err)
	require.Equal(t, 2, calls, "failures must not be cached")

	v, cached, err := l.Load(ctx, "k", func(context.Context) (string, error) { return "fresh", nil })
	require.NoError(t, err)
	require.False(t, cached)
	require.Equal(t, "fresh", v)

	v, cached, err = l.Load(ctx, "k", failing)
	require.NoError(t, err)
	require.True(t, cached)
	require.Equal(t, "fresh", v)
	require.Equal(t, 2, calls)

	clock.Advance(time.Minute)
	_, _, err = l.Load(ctx, "k", failing)
	require.Error(t, err)
	require.Equal(t, 3, calls)
}

func TestLoaderSharesConcurrentFetches(t *testing.T) {
	l := NewLoader[int](NewMemory[int](time.Minute, 0, nil))
	ctx := context.Background()

	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, _, err := l.Load(ctx, "shared", fetch)
			if err == nil {
				results[i] = v
			}
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	require.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		require.Equal(t, 42, v)
	}
}
