package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/campus-portal/internal/models"
)

// RedisSessionStore keeps the session marker under a single Redis key.
type RedisSessionStore struct {
	client *redis.Client
	key    string
}

// NewRedisSessionStore constructs a Redis backed marker store.
func NewRedisSessionStore(client *redis.Client, key string) *RedisSessionStore {
	return &RedisSessionStore{client: client, key: key}
}

// Load returns the stored marker, or an empty one when nothing is stored.
func (s *RedisSessionStore) Load(ctx context.Context) (models.SessionMarker, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.SessionMarker{}, nil
		}
		return models.SessionMarker{}, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	var marker models.SessionMarker
	if err := json.Unmarshal(raw, &marker); err != nil {
		return models.SessionMarker{}, fmt.Errorf("decode session marker: %w", err)
	}
	return marker, nil
}

// Save overwrites the marker.
func (s *RedisSessionStore) Save(ctx context.Context, marker models.SessionMarker) error {
	payload, err := json.Marshal(marker)
	if err != nil {
		return fmt.Errorf("encode session marker: %w", err)
	}
	if err := s.client.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

// Clear removes the marker. Clearing an absent marker is not an error.
func (s *RedisSessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w", s.key, err)
	}
	return nil
}

// MemorySessionStore is used when Redis is disabled; the marker lives for the process.
type MemorySessionStore struct {
	mu     sync.Mutex
	marker models.SessionMarker
}

// NewMemorySessionStore constructs an empty in-process store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

// Load returns a copy of the marker held in memory.
func (s *MemorySessionStore) Load(context.Context) (models.SessionMarker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	marker := s.marker
	marker.Raw = append(json.RawMessage(nil), s.marker.Raw...)
	return marker, nil
}

// Save replaces the marker.
func (s *MemorySessionStore) Save(_ context.Context, marker models.SessionMarker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marker = models.SessionMarker{Raw: append(json.RawMessage(nil), marker.Raw...), Verified: marker.Verified}
	return nil
}

// Clear forgets the marker.
func (s *MemorySessionStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marker = models.SessionMarker{}
	return nil
}
