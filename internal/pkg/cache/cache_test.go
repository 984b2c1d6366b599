package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore { return &memStore{data: map[string][]byte{}} }

func (s *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, ok := s.data[key]
	if !ok {
		return nil, ErrMiss
	}
	return v, nil
}

func (s *memStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.data[key] = value
	return nil
}

func (s *memStore) Del(ctx context.Context, key string) error {
	delete(s.data, key)
	return nil
}

type profile struct {
	Name string `json:"name"`
}

func TestProfileCache_RoundTrip(t *testing.T) {
	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	c := New(newMemStore(), 10*time.Minute, func() time.Time { return now })

	assert.NoError(t, c.Set(context.Background(), 7, profile{Name: "Juan"}))

	var got profile
	assert.NoError(t, c.Get(context.Background(), 7, &got))
	assert.Equal(t, "Juan", got.Name)
}

func TestProfileCache_ExpiresAfterTTL(t *testing.T) {
	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	c := New(newMemStore(), 10*time.Minute, func() time.Time { return now })

	assert.NoError(t, c.Set(context.Background(), 7, profile{Name: "Juan"}))

	now = now.Add(10*time.Minute + time.Second)
	var got profile
	assert.ErrorIs(t, c.Get(context.Background(), 7, &got), ErrMiss)
}

func TestProfileCache_Invalidate(t *testing.T) {
	c := New(newMemStore(), 10*time.Minute, nil)

	assert.NoError(t, c.Set(context.Background(), 7, profile{Name: "Juan"}))
	assert.NoError(t, c.Invalidate(context.Background(), 7))

	var got profile
	assert.ErrorIs(t, c.Get(context.Background(), 7, &got), ErrMiss)
}

func TestProfileCache_MissForUnknownUser(t *testing.T) {
	c := New(newMemStore(), time.Minute, nil)
	var got profile
	assert.ErrorIs(t, c.Get(context.Background(), 99, &got), ErrMiss)
}
