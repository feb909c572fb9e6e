package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tuneinsight/ghquad/quadrature"
)

// Rules memoizes quadrature rules in a Cache.
type Rules struct {
	cache  Cache
	ttl    time.Duration
	logger *log.Logger
}

// NewRules returns a memoizer storing the rules in c for ttl.
// A nil c selects NullCache and a nil logger discards the output.
func NewRules(c Cache, ttl time.Duration, logger *log.Logger) *Rules {
	if c == nil {
		c = NewNullCache()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Rules{cache: c, ttl: ttl, logger: logger}
}

// Get returns the rule stored under key, or computes it with compute and
// stores it. Undecodable entries are recomputed. hit reports whether the
// rule came from the cache.
func (r *Rules) Get(ctx context.Context, key string, compute func() (quadrature.Rule, error)) (rule quadrature.Rule, hit bool, err error) {

	data, found, err := r.cache.Get(ctx, key)
	if err != nil {
		return quadrature.Rule{}, false, fmt.Errorf("cannot Get: %w", err)
	}

	if found {
		if err = json.Unmarshal(data, &rule); err == nil && len(rule.Nodes) == len(rule.Weights) {
			r.logger.Debug("cache hit", "key", key, "points", rule.Len())
			return rule, true, nil
		}
		r.logger.Warn("discarding undecodable cache entry", "key", key)
	}

	r.logger.Debug("cache miss", "key", key)

	if rule, err = compute(); err != nil {
		return quadrature.Rule{}, false, err
	}

	if data, err = json.Marshal(rule); err != nil {
		return quadrature.Rule{}, false, fmt.Errorf("cannot Get: %w", err)
	}

	if err = r.cache.Set(ctx, key, data, r.ttl); err != nil {
		return quadrature.Rule{}, false, fmt.Errorf("cannot Get: %w", err)
	}

	return rule, false, nil
}

// Close closes the underlying cache.
func (r *Rules) Close() error {
	return r.cache.Close()
}
