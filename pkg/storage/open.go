package storage

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/uhrzeit/pkg/errors"
	"github.com/matzehuels/uhrzeit/pkg/observability"
)

// Drivers accepted by Open.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMongo  = "mongo"
)

// DefaultFallbackMaxBytes bounds the in-memory store used when the
// configured backend is unavailable.
const DefaultFallbackMaxBytes = 5 << 20

// Config selects and parameterizes a backend.
type Config struct {
	Driver          string `toml:"driver" yaml:"driver"`
	Path            string `toml:"path" yaml:"path"`
	Prefix          string `toml:"prefix" yaml:"prefix"`
	RedisURL        string `toml:"redis_url" yaml:"redis_url"`
	MongoURI        string `toml:"mongo_uri" yaml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database" yaml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection" yaml:"mongo_collection"`

	// FallbackMaxBytes caps the memory fallback. Zero uses
	// DefaultFallbackMaxBytes.
	FallbackMaxBytes int `toml:"fallback_max_bytes" yaml:"fallback_max_bytes"`
}

// Open builds the configured backend. When it cannot be opened or written,
// Open logs the failure and returns a capped in-memory backend, so the
// caller always gets a usable store. Only configuration errors are
// returned.
func Open(ctx context.Context, cfg Config, logger *log.Logger) (Backend, error) {
	if logger == nil {
		logger = log.Default()
	}
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		driver = DriverFile
	}

	maxBytes := cfg.FallbackMaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultFallbackMaxBytes
	}
	alternate := NewCapped(NewMemory(), maxBytes)

	var primary Backend
	var err error
	switch driver {
	case DriverMemory:
		return alternate, nil
	case DriverFile:
		primary, err = NewFile(cfg.Path)
	case DriverSQLite:
		path := cfg.Path
		if path == "" {
			dir, derr := DefaultDir()
			if derr != nil {
				err = derr
				break
			}
			path = filepath.Join(dir, "uhrzeit.db")
		}
		primary, err = NewSQLite(ctx, path)
	case DriverRedis:
		if cfg.RedisURL == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "storage driver redis requires redis_url")
		}
		primary, err = NewRedis(ctx, cfg.RedisURL)
	case DriverMongo:
		if cfg.MongoURI == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "storage driver mongo requires mongo_uri")
		}
		primary, err = NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"unknown storage driver %q: must be one of memory, file, sqlite, redis, mongo", cfg.Driver)
	}
	if err != nil {
		if errors.Is(err, errors.ErrCodeInvalidConfig) {
			return nil, err
		}
		logger.Warn("storage unavailable, progress will not survive a restart", "backend", driver, "error", err)
		observability.Storage().OnFallback(ctx, driver, err)
		return alternate, nil
	}
	logger.Debug("storage opened", "backend", driver)
	return Fallback(ctx, driver, primary, alternate, logger), nil
}
