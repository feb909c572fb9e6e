package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache is a Cache backed by a Redis server, shared between processes.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache connects to the Redis server described by opts and checks that
// it answers. Keys are stored with the given prefix.
func NewRedisCache(ctx context.Context, opts *redis.Options, prefix string) (*RedisCache, error) {

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cannot NewRedisCache: %s: %w", opts.Addr, err)
	}

	return NewRedisCacheFromClient(client, prefix), nil
}

// NewRedisCacheFromClient wraps an existing client. Closing the cache closes the client.
func NewRedisCacheFromClient(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

// Get implements Cache.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, c.wrap("Get", err)
	}
	return data, true, nil
}

// Set implements Cache.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return c.wrap("Set", c.client.Set(ctx, c.prefix+key, data, ttl).Err())
}

// Delete implements Cache.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.wrap("Delete", c.client.Del(ctx, c.prefix+key).Err())
}

// Close implements Cache.
func (c *RedisCache) Close() error {
	return c.wrap("Close", c.client.Close())
}

func (c *RedisCache) wrap(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, redis.ErrClosed):
		return fmt.Errorf("cannot %s: %w", op, ErrClosed)
	default:
		return fmt.Errorf("cannot %s: %w", op, err)
	}
}

var _ Cache = (*RedisCache)(nil)
