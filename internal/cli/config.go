package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/tuneinsight/ghquad/quadrature"
)

// Config is the content of the --config file. Missing keys keep their default value.
//
//	[golub_welsch]
//	lower = -4.0
//	upper = 4.0
//	threshold = 1e-10
//
//	[golub_welsch.bound]
//	method = "sturm"
//
//	[direct]
//	precision = 256
//
//	[cache]
//	dir = "/tmp/ghquad"
//	ttl = "24h"
type Config struct {
	GolubWelsch quadrature.GolubWelschParameters `toml:"golub_welsch"`
	Direct      quadrature.DirectParameters      `toml:"direct"`
	Cache       CacheConfig                      `toml:"cache"`
}

// CacheConfig selects the rule cache. When several backends are set,
// Redis takes precedence over Badger, which takes precedence over Dir.
type CacheConfig struct {
	Dir    string `toml:"dir"`
	Badger string `toml:"badger"`
	Redis  string `toml:"redis"`
	TTL    string `toml:"ttl"`
}

// DefaultConfig returns the default solver parameters and no cache.
func DefaultConfig() Config {
	return Config{
		GolubWelsch: quadrature.DefaultGolubWelschParameters(),
		Direct:      quadrature.DefaultDirectParameters(),
	}
}

// TTLDuration parses TTL. An empty TTL means no expiration.
func (c CacheConfig) TTLDuration() (time.Duration, error) {
	if c.TTL == "" {
		return 0, nil
	}
	ttl, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 0, fmt.Errorf("invalid cache ttl: %w", err)
	}
	return ttl, nil
}

// loadConfig decodes the TOML file at path over DefaultConfig.
// Unknown keys are rejected. An empty path returns the defaults.
func loadConfig(path string) (cfg Config, err error) {

	cfg = DefaultConfig()

	if path == "" {
		return
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("cannot load config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("cannot load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err = cfg.GolubWelsch.Validate(); err != nil {
		return Config{}, fmt.Errorf("cannot load config %s: %w", path, err)
	}

	if _, err = cfg.Cache.TTLDuration(); err != nil {
		return Config{}, fmt.Errorf("cannot load config %s: %w", path, err)
	}

	return
}
