// Package store defines the contract every session store backend fulfills.
// Backends are selected from config at startup: redis, postgresql or
// in-process memory.
package store

import (
	"context"
	"time"
)

// Data is the value bag persisted for one session.
type Data map[string]string

// Store persists session records keyed by an opaque session ID.
// A record disappears after its TTL elapses; Save refreshes the TTL.
type Store interface {
	// Get returns the record for id. The second value reports whether
	// a live record exists.
	Get(ctx context.Context, id string) (Data, bool, error)

	// Save writes the record for id with the given lifetime,
	// replacing any previous value.
	Save(ctx context.Context, id string, data Data, ttl time.Duration) error

	// Delete destroys the record for id. Deleting an absent record
	// is not an error.
	Delete(ctx context.Context, id string) error

	Ping(ctx context.Context) error

	Close() error
}
