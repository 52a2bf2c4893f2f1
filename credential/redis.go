package credential

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists the pair under two fixed keys in Redis. It exists for
// headless deployments (workers, schedulers) where the client process has no
// stable filesystem; each deployment owns its own prefix, so the pair is
// still never shared between logical client instances.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore describes the newredisstore operation and its observable behavior.
//
// NewRedisStore may return an error when input validation, dependency calls, or security checks fail.
// NewRedisStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewRedisStore(rdb *redis.Client, prefix string) (*RedisStore, error) {
	if rdb == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if prefix == "" {
		prefix = "iacrm"
	}
	return &RedisStore{rdb: rdb, prefix: prefix}, nil
}

func (s *RedisStore) accessKey() string  { return s.prefix + ":access_token" }
func (s *RedisStore) refreshKey() string { return s.prefix + ":refresh_token" }

// Load describes the load operation and its observable behavior.
//
// Load may return an error when input validation, dependency calls, or security checks fail.
// Load does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisStore) Load(ctx context.Context) (Pair, error) {
	values, err := s.rdb.MGet(ctx, s.accessKey(), s.refreshKey()).Result()
	if err != nil {
		return Pair{}, fmt.Errorf("load credentials: %w", err)
	}

	var pair Pair
	if v, ok := values[0].(string); ok {
		pair.AccessToken = v
	}
	if v, ok := values[1].(string); ok {
		pair.RefreshToken = v
	}
	if pair.IsZero() {
		return Pair{}, ErrNoCredentials
	}
	return pair, nil
}

// Save describes the save operation and its observable behavior.
//
// Save may return an error when input validation, dependency calls, or security checks fail.
// Save does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisStore) Save(ctx context.Context, pair Pair) error {
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, s.accessKey(), pair.AccessToken, 0)
	pipe.Set(ctx, s.refreshKey(), pair.RefreshToken, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

// Clear describes the clear operation and its observable behavior.
//
// Clear may return an error when input validation, dependency calls, or security checks fail.
// Clear does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.accessKey(), s.refreshKey()).Err(); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}
