// Package cache memoizes fetch results keyed by operation and arguments,
// each entry valid for a fixed time-to-live.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// ErrNotFound is returned by a Store when it holds no entry for a key.
var ErrNotFound = errors.New("cache: entry not found")

// Entry is a stored result together with the time it was computed.
type Entry struct {
	Value     json.RawMessage `json:"value"`
	CreatedAt time.Time       `json:"createdAt"`
	TTL       time.Duration   `json:"ttl"`
}

// Fresh reports whether the entry is still within its time-to-live at now.
func (e Entry) Fresh(now time.Time) bool {
	return now.Sub(e.CreatedAt) < e.TTL
}

// Store is the backing storage for cache entries.
type Store interface {
	Get(ctx context.Context, key string) (Entry, error)
	Set(ctx context.Context, key string, e Entry) error
	Delete(ctx context.Context, key string) error
}

// Clock abstracts time so tests can move it by hand.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

// Cache memoizes computations in a Store.
type Cache struct {
	store  Store
	clock  Clock
	group  singleflight.Group
	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a cache over store. A nil clock means SystemClock.
func New(store Store, clock Clock) *Cache {
	if clock == nil {
		clock = SystemClock
	}
	return &Cache{store: store, clock: clock}
}

// Key builds a deterministic cache key from an operation and its ordered
// arguments. Arguments are hashed as a JSON list, so separators inside an
// argument and empty arguments cannot make two tuples collide.
func Key(op string, args ...string) string {
	parts, _ := json.Marshal(append([]string{op}, args...))
	hash := sha256.Sum256(parts)
	return fmt.Sprintf("yt:%s:%x", op, hash[:12])
}

// Stats returns the hit and miss counters.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Invalidate drops the entry for (op, args) so the next access recomputes it.
func (c *Cache) Invalidate(ctx context.Context, op string, args ...string) error {
	return c.store.Delete(ctx, Key(op, args...))
}

// GetOrCompute returns the value cached for (op, args) if it is younger than
// ttl. Otherwise it calls compute, stores the result and returns it. Errors
// from compute are returned and nothing is stored.
func GetOrCompute[T any](ctx context.Context, c *Cache, op string, args []string, ttl time.Duration, compute func(context.Context) (T, error)) (T, error) {
	var zero T
	key := Key(op, args...)

	if raw, ok := c.lookup(ctx, key); ok {
		c.hits.Add(1)
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return zero, fmt.Errorf("cache: decode %s: %w", op, err)
		}
		return v, nil
	}

	res, err, _ := c.group.Do(key, func() (any, error) {
		// shared by every waiter on key, so one caller going away must not cancel it
		ctx := context.WithoutCancel(ctx)

		// another caller may have filled the entry while we waited
		if raw, ok := c.lookup(ctx, key); ok {
			c.hits.Add(1)
			return raw, nil
		}
		c.misses.Add(1)

		v, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("cache: encode %s: %w", op, err)
		}

		entry := Entry{Value: raw, CreatedAt: c.clock.Now(), TTL: ttl}
		if err := c.store.Set(ctx, key, entry); err != nil {
			log.Warn().Err(err).Str("op", op).Msg("cache: store failed, serving uncached result")
		}
		return json.RawMessage(raw), nil
	})
	if err != nil {
		return zero, err
	}

	var v T
	if err := json.Unmarshal(res.(json.RawMessage), &v); err != nil {
		return zero, fmt.Errorf("cache: decode %s: %w", op, err)
	}
	return v, nil
}

func (c *Cache) lookup(ctx context.Context, key string) (json.RawMessage, bool) {
	e, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warn().Err(err).Str("key", key).Msg("cache: store read failed")
		}
		return nil, false
	}
	if !e.Fresh(c.clock.Now()) {
		return nil, false
	}
	return e.Value, true
}
