// Package store persists raw API responses so they can be served while the
// PokeAPI is unreachable.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Backend names accepted by Open.
const (
	BackendNone   = "none"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Store is a key-value store of response bodies keyed by request URL.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Close() error
}

// Config selects and configures a backend.
type Config struct {
	Backend    string
	SQLitePath string
	RedisURL   string
	RedisPass  string
	TTL        time.Duration
}

// Open creates the configured backend. It returns a nil Store for
// BackendNone or an empty backend.
func Open(ctx context.Context, cfg Config, logger zerolog.Logger) (Store, error) {
	switch cfg.Backend {
	case "", BackendNone:
		return nil, nil
	case BackendSQLite:
		s, err := OpenSQLite(cfg.SQLitePath, cfg.TTL)
		if err != nil {
			return nil, err
		}
		removed, err := s.Prune(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to prune expired responses")
		}
		logger.Debug().
			Str("path", cfg.SQLitePath).
			Int64("pruned", removed).
			Msg("Opened SQLite offline store")
		return s, nil
	case BackendRedis:
		s, err := NewRedis(ctx, RedisConfig{URL: cfg.RedisURL, Password: cfg.RedisPass}, cfg.TTL)
		if err != nil {
			return nil, err
		}
		logger.Debug().Msg("Connected to Redis offline store")
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
