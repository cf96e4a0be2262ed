// Package redisstore provides a redis-backed session store. Records are
// stored as JSON under a namespaced key and expire via the key's TTL.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/patric-chuzhbe/homesite/internal/store"
)

const sessionKeyPrefix = "sess"

// RedisStore is a session store backed by a redis server.
type RedisStore struct {
	client *redis.Client
}

// New connects to the redis server at addr and verifies the connection.
func New(ctx context.Context, addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf(
			"in internal/store/redisstore/redisstore.go/New(): error while `client.Ping()` calling: %w",
			err,
		)
	}

	return &RedisStore{client: client}, nil
}

func sessionKey(id string) string {
	return sessionKeyPrefix + ":" + id
}

// Get returns the record for id, reporting absence when the key is
// missing or already expired.
func (s *RedisStore) Get(ctx context.Context, id string) (store.Data, bool, error) {
	raw, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	data := store.Data{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, false, fmt.Errorf(
			"in internal/store/redisstore/redisstore.go/Get(): error while `json.Unmarshal()` calling: %w",
			err,
		)
	}

	return data, true, nil
}

// Save writes the record for id and refreshes the key TTL.
func (s *RedisStore) Save(ctx context.Context, id string, data store.Data, ttl time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, sessionKey(id), raw, ttl).Err()
}

// Delete destroys the record for id.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKey(id)).Err()
}

// Ping verifies the redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the underlying redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
