package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps JSON-encoded sessions in Redis under prefix+token.
// Expiry is delegated to Redis key TTLs.
type RedisStore[S any] struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore returns a store using client. An empty prefix defaults to "session:".
func NewRedisStore[S any](client redis.UniversalClient, prefix string) *RedisStore[S] {
	if client == nil {
		panic("session: NewRedisStore: nil client")
	}
	if prefix == "" {
		prefix = "session:"
	}
	return &RedisStore[S]{client: client, prefix: prefix}
}

func (s *RedisStore[S]) key(token string) string {
	return s.prefix + token
}

// Get loads and decodes the session stored under token.
func (s *RedisStore[S]) Get(ctx context.Context, token string) (*S, error) {
	data, err := s.client.Get(ctx, s.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrStoreFailure, err)
	}

	var v S
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, errors.Join(ErrStoreFailure, fmt.Errorf("decode session: %w", err))
	}
	return &v, nil
}

// Set encodes and stores v. A ttl <= 0 never expires.
func (s *RedisStore[S]) Set(ctx context.Context, token string, v *S, ttl time.Duration) error {
	if token == "" || v == nil {
		return ErrInvalidSession
	}

	data, err := json.Marshal(v)
	if err != nil {
		return errors.Join(ErrStoreFailure, fmt.Errorf("encode session: %w", err))
	}

	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, s.key(token), data, ttl).Err(); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

// Delete removes the session stored under token.
func (s *RedisStore[S]) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}
