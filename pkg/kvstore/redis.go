package kvstore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores entries as plain Redis strings. Expiry is carried inside the value,
// so keys are written without a Redis TTL.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

// NewRedisBackend wraps a Redis client. prefix namespaces every key.
func NewRedisBackend(client *redis.Client, prefix string) *RedisBackend {
	return &RedisBackend{client: client, prefix: prefix}
}

func (b *RedisBackend) Get(ctx context.Context, key string) (string, bool, error) {
	if b.client == nil {
		return "", false, errors.New("redis client not configured")
	}
	value, err := b.client.Get(ctx, b.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (b *RedisBackend) Set(ctx context.Context, key, value string) error {
	if b.client == nil {
		return errors.New("redis client not configured")
	}
	return b.client.Set(ctx, b.prefix+key, value, 0).Err()
}

func (b *RedisBackend) Delete(ctx context.Context, key string) error {
	if b.client == nil {
		return errors.New("redis client not configured")
	}
	return b.client.Del(ctx, b.prefix+key).Err()
}
