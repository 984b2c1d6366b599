// Package cache is a TTL cache for per-user profile snapshots. Expiry is
// driven by an injected clock and entries live in a pluggable Store, so both
// are testable without a running backend.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrMiss = errors.New("cache: miss")

// Store is the raw byte store underneath the cache. RedisStore is used in
// production; tests supply an in-memory map.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

type entry struct {
	Payload   json.RawMessage `json:"payload"`
	ExpiresAt time.Time       `json:"expires_at"`
}

type ProfileCache struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

func New(store Store, ttl time.Duration, now func() time.Time) *ProfileCache {
	if now == nil {
		now = time.Now
	}
	return &ProfileCache{store: store, ttl: ttl, now: now}
}

func key(userID int64) string { return fmt.Sprintf("profile:%d", userID) }

func (c *ProfileCache) Get(ctx context.Context, userID int64, dst any) error {
	raw, err := c.store.Get(ctx, key(userID))
	if err != nil {
		return ErrMiss
	}
	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return ErrMiss
	}
	// Expiry is checked against the injected clock as well as the store TTL,
	// so a store without native expiry still behaves correctly.
	if !c.now().Before(e.ExpiresAt) {
		_ = c.store.Del(ctx, key(userID))
		return ErrMiss
	}
	return json.Unmarshal(e.Payload, dst)
}

func (c *ProfileCache) Set(ctx context.Context, userID int64, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	e := entry{Payload: payload, ExpiresAt: c.now().Add(c.ttl)}
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, key(userID), raw, c.ttl)
}

func (c *ProfileCache) Invalidate(ctx context.Context, userID int64) error {
	return c.store.Del(ctx, key(userID))
}

// RedisStore backs the cache with redis.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.client.Get(ctx, key).Bytes()
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *RedisStore) Del(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
