package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dgraph-io/badger/v4"
)

// BadgerConfig configures a BadgerCache.
type BadgerConfig struct {
	// Path is the database directory. Required unless InMemory is set.
	Path string
	// InMemory keeps the whole database in memory.
	InMemory bool
	// SyncWrites flushes every write to disk before returning.
	SyncWrites bool
	// Logger receives the internal messages of the database. Nil disables them.
	Logger *log.Logger
}

// BadgerCache is a Cache backed by an embedded badger key-value store.
type BadgerCache struct {
	db *badger.DB
}

// badgerLogger adapts a *log.Logger to badger.Logger.
type badgerLogger struct {
	logger *log.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Errorf(format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warnf(format, args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debugf(format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debugf(format, args...)
}

// NewBadgerCache opens the badger database described by cfg.
func NewBadgerCache(cfg BadgerConfig) (*BadgerCache, error) {

	var opts badger.Options

	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {

		if cfg.Path == "" {
			return nil, errors.New("cannot NewBadgerCache: path is required for a persistent database")
		}

		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("cannot NewBadgerCache: %w", err)
		}

		opts = badger.DefaultOptions(cfg.Path)
	}

	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("cannot NewBadgerCache: %w", err)
	}

	return &BadgerCache{db: db}, nil
}

// Get implements Cache.
func (c *BadgerCache) Get(ctx context.Context, key string) (data []byte, hit bool, err error) {

	if err = ctx.Err(); err != nil {
		return
	}

	err = c.db.View(func(txn *badger.Txn) error {

		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		data, err = item.ValueCopy(nil)
		hit = err == nil
		return err
	})

	if err != nil {
		return nil, false, c.wrap("Get", err)
	}

	return
}

// Set implements Cache.
func (c *BadgerCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {

	if err := ctx.Err(); err != nil {
		return err
	}

	err := c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), data)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})

	return c.wrap("Set", err)
}

// Delete implements Cache.
func (c *BadgerCache) Delete(ctx context.Context, key string) error {

	if err := ctx.Err(); err != nil {
		return err
	}

	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})

	return c.wrap("Delete", err)
}

// Close implements Cache.
func (c *BadgerCache) Close() error {
	return c.wrap("Close", c.db.Close())
}

func (c *BadgerCache) wrap(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, badger.ErrDBClosed):
		return fmt.Errorf("cannot %s: %w", op, ErrClosed)
	default:
		return fmt.Errorf("cannot %s: %w", op, err)
	}
}

var _ Cache = (*BadgerCache)(nil)
