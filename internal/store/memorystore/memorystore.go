// Package memorystore provides an in-process session store used when
// neither redis nor postgresql is configured. Records live in a map
// guarded by a mutex and expire lazily on access.
package memorystore

import (
	"context"
	"sync"
	"time"

	"github.com/patric-chuzhbe/homesite/internal/store"
)

type record struct {
	data      store.Data
	expiresAt time.Time
}

// MemoryStore is a map-backed session store.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]record
	now     func() time.Time
}

// New returns an empty MemoryStore.
func New() (*MemoryStore, error) {
	return &MemoryStore{
		records: map[string]record{},
		now:     time.Now,
	}, nil
}

// Get returns the live record for id, expiring it if its TTL has passed.
func (s *MemoryStore) Get(_ context.Context, id string) (store.Data, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, found := s.records[id]
	if !found {
		return nil, false, nil
	}

	if s.now().After(rec.expiresAt) {
		delete(s.records, id)
		return nil, false, nil
	}

	copied := store.Data{}
	for k, v := range rec.data {
		copied[k] = v
	}

	return copied, true, nil
}

// Save replaces the record for id and refreshes its lifetime.
func (s *MemoryStore) Save(_ context.Context, id string, data store.Data, ttl time.Duration) error {
	copied := store.Data{}
	for k, v := range data {
		copied[k] = v
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[id] = record{
		data:      copied,
		expiresAt: s.now().Add(ttl),
	}

	return nil
}

// Delete destroys the record for id.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, id)

	return nil
}

// Ping reports the store as always available.
func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}

// Close releases nothing; the store is purely in-process.
func (s *MemoryStore) Close() error {
	return nil
}
