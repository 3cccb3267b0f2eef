package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/oykukmnGlad/ROOTEAM/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// Store is a JSON cache over Redis. A Store with a nil client is valid and
// behaves as an always-empty cache.
type Store struct {
	client *redis.Client
}

// NewStore wraps client, which may be nil.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Enabled reports whether a Redis client is configured.
func (s *Store) Enabled() bool {
	return s != nil && s.client != nil
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func (s *Store) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	b, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func (s *Store) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, ttl).Err()
}

// Aside tries Redis first; on a miss it calls fetch, which must populate
// dest, then stores dest with ttl. Redis failures degrade to fetch.
func (s *Store) Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) (hit bool, err error) {
	found, err := s.GetJSON(ctx, key, dest)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	if found {
		return true, nil
	}

	if err := fetch(); err != nil {
		return false, err
	}

	if err := s.SetJSON(ctx, key, dest, ttl); err != nil {
		middleware.Logger.WarnContext(ctx, "cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	return false, nil
}

// Invalidate removes key.
func (s *Store) Invalidate(ctx context.Context, key string) {
	if s.Enabled() {
		s.client.Del(ctx, key)
	}
}
