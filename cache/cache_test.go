package cache_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/ghquad/cache"
	"github.com/tuneinsight/ghquad/quadrature"
)

func newBadger(t *testing.T) *cache.BadgerCache {
	c, err := cache.NewBadgerCache(cache.BadgerConfig{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func newRedis(t *testing.T) (*cache.RedisCache, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	c := cache.NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: s.Addr()}), "ghquad:")
	t.Cleanup(func() { _ = c.Close() })
	return c, s
}

func newRedisCache(t *testing.T) *cache.RedisCache {
	c, _ := newRedis(t)
	return c
}

func newFile(t *testing.T) *cache.FileCache {
	c, err := cache.NewFileCache(filepath.Join(t.TempDir(), "rules"))
	require.NoError(t, err)
	return c
}

func TestNullCache(t *testing.T) {

	ctx := context.Background()
	c := cache.NewNullCache()
	defer c.Close()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Hour))

	data, hit, err := c.Get(ctx, "key")
	require.NoError(t, err)
	require.False(t, hit)
	require.Nil(t, data)

	require.NoError(t, c.Delete(ctx, "key"))
}

func TestCache(t *testing.T) {

	ctx := context.Background()

	for name, c := range map[string]cache.Cache{
		"File":   newFile(t),
		"Badger": newBadger(t),
		"Redis":  newRedisCache(t),
	} {
		t.Run(name, func(t *testing.T) {

			_, hit, err := c.Get(ctx, "missing")
			require.NoError(t, err)
			require.False(t, hit)

			require.NoError(t, c.Set(ctx, "key", []byte("value"), 0))
			data, hit, err := c.Get(ctx, "key")
			require.NoError(t, err)
			require.True(t, hit)
			require.Equal(t, []byte("value"), data)

			require.NoError(t, c.Set(ctx, "key", []byte("other"), time.Hour))
			data, hit, err = c.Get(ctx, "key")
			require.NoError(t, err)
			require.True(t, hit)
			require.Equal(t, []byte("other"), data)

			require.NoError(t, c.Delete(ctx, "key"))
			_, hit, err = c.Get(ctx, "key")
			require.NoError(t, err)
			require.False(t, hit)

			require.NoError(t, c.Delete(ctx, "key"))
		})
	}

	t.Run("File/Expired", func(t *testing.T) {
		c := newFile(t)
		require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Nanosecond))
		time.Sleep(time.Millisecond)
		_, hit, err := c.Get(ctx, "key")
		require.NoError(t, err)
		require.False(t, hit)
	})

	t.Run("File/Corrupted", func(t *testing.T) {
		dir := t.TempDir()
		c, err := cache.NewFileCache(dir)
		require.NoError(t, err)
		require.NoError(t, c.Set(ctx, "key", []byte("value"), 0))

		hash := cache.Hash([]byte("key"))
		path := filepath.Join(dir, hash[:2], hash[2:]+".json")
		require.FileExists(t, path)
		require.NoError(t, os.WriteFile(path, []byte("{"), 0644))

		_, hit, err := c.Get(ctx, "key")
		require.NoError(t, err)
		require.False(t, hit)
		require.NoFileExists(t, path)
	})

	t.Run("Badger/Persistent", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "db")

		c, err := cache.NewBadgerCache(cache.BadgerConfig{Path: dir, SyncWrites: true})
		require.NoError(t, err)
		require.NoError(t, c.Set(ctx, "key", []byte("value"), 0))
		require.NoError(t, c.Close())

		_, _, err = c.Get(ctx, "key")
		require.ErrorIs(t, err, cache.ErrClosed)

		c, err = cache.NewBadgerCache(cache.BadgerConfig{Path: dir})
		require.NoError(t, err)
		defer c.Close()

		data, hit, err := c.Get(ctx, "key")
		require.NoError(t, err)
		require.True(t, hit)
		require.Equal(t, []byte("value"), data)

		_, err = cache.NewBadgerCache(cache.BadgerConfig{})
		require.Error(t, err)
	})

	t.Run("Badger/Canceled", func(t *testing.T) {
		c := newBadger(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		require.ErrorIs(t, c.Set(cctx, "key", nil, 0), context.Canceled)
		_, _, err := c.Get(cctx, "key")
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Redis/Server", func(t *testing.T) {
		c, s := newRedis(t)

		_, err := cache.NewRedisCache(ctx, &redis.Options{Addr: s.Addr()}, "ghquad:")
		require.NoError(t, err)

		require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Hour))
		require.True(t, s.Exists("ghquad:key"))
		require.False(t, s.Exists("key"))
		require.Equal(t, time.Hour, s.TTL("ghquad:key"))

		got, err := s.Get("ghquad:key")
		require.NoError(t, err)
		require.Equal(t, "value", got)

		require.NoError(t, c.Set(ctx, "persistent", []byte("value"), 0))
		require.Zero(t, s.TTL("ghquad:persistent"))

		s.FastForward(2 * time.Hour)
		_, hit, err := c.Get(ctx, "key")
		require.NoError(t, err)
		require.False(t, hit)

		data, hit, err := c.Get(ctx, "persistent")
		require.NoError(t, err)
		require.True(t, hit)
		require.Equal(t, []byte("value"), data)
	})

	t.Run("Redis/Unreachable", func(t *testing.T) {
		opts := &redis.Options{
			Addr:        "127.0.0.1:1",
			DialTimeout: 100 * time.Millisecond,
			MaxRetries:  -1,
		}

		_, err := cache.NewRedisCache(ctx, opts, "ghquad:")
		require.Error(t, err)

		c := cache.NewRedisCacheFromClient(redis.NewClient(opts), "ghquad:")
		_, hit, err := c.Get(ctx, "key")
		require.Error(t, err)
		require.False(t, hit)
		require.NoError(t, c.Close())
		require.ErrorIs(t, c.Set(ctx, "key", nil, 0), cache.ErrClosed)
	})
}

func TestHash(t *testing.T) {

	h := cache.Hash([]byte("hello"))
	require.Len(t, h, 64)
	require.Equal(t, h, cache.Hash([]byte("hello")))
	require.NotEqual(t, h, cache.Hash([]byte("world")))

	gw := quadrature.DefaultGolubWelschParameters()

	k0, err := cache.Key("golub-welsch", 100, gw)
	require.NoError(t, err)
	k1, err := cache.Key("golub-welsch", 100, gw)
	require.NoError(t, err)
	require.Equal(t, k0, k1)

	k2, err := cache.Key("golub-welsch", 101, gw)
	require.NoError(t, err)
	require.NotEqual(t, k0, k2)

	gw.Threshold = 0
	k3, err := cache.Key("golub-welsch", 100, gw)
	require.NoError(t, err)
	require.NotEqual(t, k0, k3)

	k4, err := cache.Key("direct", 100, quadrature.DefaultDirectParameters())
	require.NoError(t, err)
	require.NotEqual(t, k0, k4)

	_, err = cache.Key("direct", 1, func() {})
	require.Error(t, err)
}

func TestRules(t *testing.T) {

	ctx := context.Background()

	for name, c := range map[string]cache.Cache{
		"File":   newFile(t),
		"Badger": newBadger(t),
		"Redis":  newRedisCache(t),
	} {
		t.Run(name, func(t *testing.T) {

			rules := cache.NewRules(c, 0, nil)

			calls := 0
			compute := func() (quadrature.Rule, error) {
				calls++
				return quadrature.GaussHermiteGolubWelsch(64)
			}

			key, err := cache.Key("golub-welsch", 64, quadrature.DefaultGolubWelschParameters())
			require.NoError(t, err)

			r0, hit, err := rules.Get(ctx, key, compute)
			require.NoError(t, err)
			require.False(t, hit)

			r1, hit, err := rules.Get(ctx, key, compute)
			require.NoError(t, err)
			require.True(t, hit)

			require.Equal(t, 1, calls)
			require.True(t, cmp.Equal(r0, r1), cmp.Diff(r0, r1))

			// Undecodable entries are recomputed.
			require.NoError(t, c.Set(ctx, key, []byte("not json"), 0))
			r2, hit, err := rules.Get(ctx, key, compute)
			require.NoError(t, err)
			require.False(t, hit)
			require.Equal(t, 2, calls)
			require.True(t, cmp.Equal(r0, r2))
		})
	}

	t.Run("ComputeError", func(t *testing.T) {
		rules := cache.NewRules(nil, 0, nil)
		_, _, err := rules.Get(ctx, "key", func() (quadrature.Rule, error) {
			return quadrature.Rule{}, quadrature.ErrInvalidDegree
		})
		require.ErrorIs(t, err, quadrature.ErrInvalidDegree)
		require.NoError(t, rules.Close())
	})

	t.Run("CacheError", func(t *testing.T) {
		c, err := cache.NewBadgerCache(cache.BadgerConfig{InMemory: true})
		require.NoError(t, err)
		require.NoError(t, c.Close())
		_, _, err = cache.NewRules(c, 0, nil).Get(ctx, "key", func() (quadrature.Rule, error) {
			return quadrature.Rule{}, errors.New("unreachable")
		})
		require.ErrorIs(t, err, cache.ErrClosed)
	})
}
