package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "shop:idempotency:"

// RedisKeyStore claims keys with SET NX so every API instance sees the same
// claims. It shares the client with the token blacklist.
type RedisKeyStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisKeyStore wraps an existing client. An empty prefix uses the default.
func NewRedisKeyStore(client *redis.Client, keyPrefix string) *RedisKeyStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisKeyStore{client: client, keyPrefix: keyPrefix}
}

func (s *RedisKeyStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.keyPrefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim idempotency key: %w", err)
	}
	return ok, nil
}

func (s *RedisKeyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release idempotency key: %w", err)
	}
	return nil
}

// Close is a no-op; the shared client is closed by its owner
func (s *RedisKeyStore) Close() error {
	return nil
}
