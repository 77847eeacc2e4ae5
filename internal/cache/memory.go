package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryStore keeps entries in process memory on top of an expiring LRU.
// A size of 0 leaves it unbounded; a retention of 0 keeps entries until they
// are evicted or overwritten. Freshness is always judged by Entry.Fresh, so
// retention only reclaims memory.
type MemoryStore struct {
	lru *expirable.LRU[string, Entry]
}

// NewMemoryStore creates a store holding at most size entries for retention.
func NewMemoryStore(size int, retention time.Duration) *MemoryStore {
	return &MemoryStore{lru: expirable.NewLRU[string, Entry](size, nil, retention)}
}

// Get returns the entry stored under key, or ErrNotFound.
func (m *MemoryStore) Get(_ context.Context, key string) (Entry, error) {
	e, ok := m.lru.Get(key)
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

// Set stores e under key, evicting the least recently used entry when full.
func (m *MemoryStore) Set(_ context.Context, key string, e Entry) error {
	m.lru.Add(key, e)
	return nil
}

// Delete removes the entry stored under key.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.lru.Remove(key)
	return nil
}

// Len returns the number of entries held, fresh or stale.
func (m *MemoryStore) Len() int {
	return m.lru.Len()
}
