package cache

import (
	"context"
	"os"
	"path/filepath"

	perrors "github.com/matzehuels/scatterplot/pkg/errors"
)

// Backend names.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config selects and configures a backend.
type Config struct {
	Backend string      `toml:"backend"`
	Dir     string      `toml:"dir"`    // file backend; empty means DefaultDir
	TTL     string      `toml:"ttl"`    // time.ParseDuration syntax
	Prefix  string      `toml:"prefix"` // key namespace on shared backends
	Redis   RedisConfig `toml:"redis"`
	Mongo   MongoConfig `toml:"mongo"`
}

// DefaultDir returns $XDG_CACHE_HOME/scatterplot, falling back to
// ~/.cache/scatterplot.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "scatterplot"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "scatterplot"), nil
}

// Open returns the backend named by cfg.Backend. An empty backend selects
// the file cache.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendFile:
		dir := cfg.Dir
		if dir == "" {
			d, err := DefaultDir()
			if err != nil {
				return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "resolve cache directory")
			}
			dir = d
		}
		return NewFileCache(dir)
	case BackendRedis:
		c, err := NewRedisCache(ctx, cfg.Redis)
		if err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeNetwork, err, "open redis cache")
		}
		return c, nil
	case BackendMongo:
		c, err := NewMongoCache(ctx, cfg.Mongo)
		if err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeNetwork, err, "open mongo cache")
		}
		return c, nil
	case BackendNone:
		return NewNullCache(), nil
	}
	return nil, perrors.New(perrors.ErrCodeInvalidConfig, "unknown cache backend: %q", cfg.Backend)
}

// Keyer returns the keyer for cfg, scoped when a prefix is set.
func (cfg Config) Keyer() Keyer {
	if cfg.Prefix == "" {
		return NewDefaultKeyer()
	}
	return NewScopedKeyer(NewDefaultKeyer(), cfg.Prefix)
}
