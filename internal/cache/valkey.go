package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"
)

// Valkey is a Cache shared between processes through a Valkey server.
// Values are stored as JSON and expire server-side after the TTL, which
// the caller observes as a miss.
type Valkey[V any] struct {
	client valkey.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// NewValkey constructs a Valkey-backed cache namespaced by prefix.
func NewValkey[V any](client valkey.Client, prefix string, ttl time.Duration, logger *slog.Logger) *Valkey[V] {
	if prefix == "" {
		prefix = "airaware"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Valkey[V]{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger.With("component", "cache.valkey", "prefix", prefix),
	}
}

// Get returns the cached value. Transport and decode failures are logged
// and reported as a miss.
func (c *Valkey[V]) Get(ctx context.Context, key string) (V, bool) {
	var zero V
	payload, err := c.client.Do(ctx, c.client.B().Get().Key(c.key(key)).Build()).ToString()
	if err != nil {
		if !valkey.IsValkeyNil(err) {
			c.logger.Warn("valkey get failed", "key", key, "error", err)
		}
		return zero, false
	}

	entry, err := decodeEntry[V](payload)
	if err != nil {
		c.logger.Warn("valkey entry malformed", "key", key, "error", err)
		return zero, false
	}
	return entry.Value, true
}

// Put stores value with the cache TTL.
func (c *Valkey[V]) Put(ctx context.Context, key string, value V) {
	payload, err := encodeEntry(Entry[V]{Value: value, FetchedAt: time.Now().UTC()})
	if err != nil {
		c.logger.Warn("valkey entry encode failed", "key", key, "error", err)
		return
	}

	ttl := c.ttl
	if ttl < time.Second {
		ttl = time.Second
	}
	cmd := c.client.B().Set().Key(c.key(key)).Value(payload).Ex(ttl).Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		c.logger.Warn("valkey set failed", "key", key, "error", err)
	}
}

func (c *Valkey[V]) key(k string) string {
	return c.prefix + ":" + k
}

func encodeEntry[V any](e Entry[V]) (string, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeEntry[V any](payload string) (Entry[V], error) {
	var e Entry[V]
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		return Entry[V]{}, err
	}
	return e, nil
}

var _ Cache[int] = (*Valkey[int])(nil)
