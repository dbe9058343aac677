package cache

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"
)

// Loader serializes refetches per key: concurrent misses for the same key
// share one upstream call, and only a successful result is stored. Failures
// are never cached, so the next call retries.
type Loader[V any] struct {
	cache Cache[V]
	group singleflight.Group
}

type loadResult[V any] struct {
	value  V
	cached bool
}

// NewLoader wraps c.
func NewLoader[V any](c Cache[V]) *Loader[V] {
	return &Loader[V]{cache: c}
}

// Load returns the fresh cached value for key, or calls fetch and stores its
// result. The boolean reports whether the value came from the cache.
func (l *Loader[V]) Load(ctx context.Context, key string, fetch func(context.Context) (V, error)) (V, bool, error) {
	if v, ok := l.cache.Get(ctx, key); ok {
		return v, true, nil
	}

	res, err, _ := l.group.Do(key, func() (interface{}, error) {
		// Another flight may have stored the key between our miss and now.
		if v, ok := l.cache.Get(ctx, key); ok {
			return loadResult[V]{value: v, cached: true}, nil
		}
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		l.cache.Put(ctx, key, v)
		return loadResult[V]{value: v}, nil
	})
	if err != nil {
		var zero V
		return zero, false, err
	}

	r, ok := res.(loadResult[V])
	if !ok {
		var zero V
		return zero, false, fmt.Errorf("unexpected loader result type %T", res)
	}
	return r.value, r.cached, nil
}
