package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const storageTimeout = 3 * time.Second

// SessionStorage implements fiber.Storage on top of a Redis client so that
// the session middleware keeps login state in Redis.
type SessionStorage struct {
	client *redis.Client
	prefix string
}

// NewSessionStorage returns a storage writing keys under SessionKeyPrefix.
func NewSessionStorage(client *redis.Client) *SessionStorage {
	return &SessionStorage{client: client, prefix: SessionKeyPrefix}
}

func (s *SessionStorage) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storageTimeout)
}

// Get returns nil, nil for unknown keys.
func (s *SessionStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	ctx, cancel := s.ctx()
	defer cancel()

	val, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

// Set stores val; exp of zero means no expiry.
func (s *SessionStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()
	return s.client.Set(ctx, s.prefix+key, val, exp).Err()
}

func (s *SessionStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()
	return s.client.Del(ctx, s.prefix+key).Err()
}

// Reset removes every session key.
func (s *SessionStorage) Reset() error {
	ctx, cancel := s.ctx()
	defer cancel()

	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close is a no-op; the client is owned by the server.
func (s *SessionStorage) Close() error {
	return nil
}
