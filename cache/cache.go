// Package cache stores computed quadrature rules, which are expensive to
// recompute for large orders, in pluggable byte stores.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrClosed is returned by the operations of a closed cache.
var ErrClosed = errors.New("cache: closed")

// Cache is a byte store with optional expiration.
// A ttl <= 0 means that the entry does not expire.
type Cache interface {
	// Get returns the data stored under key and whether it was found.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	// Set stores data under key.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the resources held by the cache.
	Close() error
}
