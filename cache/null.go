package cache

import (
	"context"
	"time"
)

// NullCache stores nothing: every Get is a miss.
type NullCache struct{}

// NewNullCache returns a Cache that stores nothing.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get implements Cache.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set implements Cache.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete implements Cache.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close implements Cache.
func (c *NullCache) Close() error {
	return nil
}

var _ Cache = (*NullCache)(nil)
