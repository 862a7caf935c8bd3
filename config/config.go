package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/s0up4200/pokedex/pokeapi"
	"github.com/s0up4200/pokedex/server"
	"github.com/s0up4200/pokedex/service"
	"github.com/s0up4200/pokedex/store"
	"github.com/s0up4200/pokedex/urlutil"
)

// EnvPrefix prefixes every environment override, e.g. POKEDEX_API_BASE_URL.
const EnvPrefix = "POKEDEX"

// Load loads the configuration. With an empty configPath the standard
// locations are searched and a missing file leaves the defaults in place.
// A .env file in the working directory is applied first when present.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".pokedex"))
		}

		// Check /etc
		v.AddConfigPath("/etc/pokedex/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	svc := service.DefaultConfig()

	// API defaults
	v.SetDefault("api.base_url", urlutil.DefaultBaseURL)
	v.SetDefault("api.timeout", pokeapi.DefaultTimeout)
	v.SetDefault("api.user_agent", pokeapi.DefaultUserAgent)
	v.SetDefault("api.rate_limit.qps", 0.0)
	v.SetDefault("api.rate_limit.burst", 1)

	// Service defaults
	v.SetDefault("service.max_retries", svc.MaxRetries)
	v.SetDefault("service.retry_delay", svc.RetryDelay)
	v.SetDefault("service.cache_ttl", svc.CacheTTL)
	v.SetDefault("service.batch_concurrency", svc.BatchConcurrency)
	v.SetDefault("service.chunk_delay", svc.ChunkDelay)
	v.SetDefault("service.sample_size", svc.SampleSize)

	// Network defaults
	v.SetDefault("network.probe_url", "")
	v.SetDefault("network.probe_interval", 30*time.Second)
	v.SetDefault("network.probe_timeout", 5*time.Second)

	// Store defaults
	v.SetDefault("store.backend", store.BackendNone)
	v.SetDefault("store.ttl", 24*time.Hour)
	v.SetDefault("store.sqlite.path", defaultSQLitePath())
	v.SetDefault("store.redis.url", "redis://localhost:6379/0")
	v.SetDefault("store.redis.password", "")

	// Server defaults
	v.SetDefault("server.addr", server.DefaultAddr)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

func defaultSQLitePath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "pokedex", "responses.db")
	}
	return "pokedex.db"
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if _, err := urlutil.NewBuilder(cfg.API.BaseURL); err != nil {
		return fmt.Errorf("invalid api.base_url %q: %w", cfg.API.BaseURL, err)
	}
	if cfg.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}
	if cfg.API.RateLimit.QPS < 0 || cfg.API.RateLimit.Burst < 0 {
		return fmt.Errorf("api.rate_limit must not be negative")
	}

	if err := cfg.ServiceConfig().Validate(); err != nil {
		return fmt.Errorf("invalid service section: %w", err)
	}

	if cfg.Network.ProbeInterval < 0 || cfg.Network.ProbeTimeout < 0 {
		return fmt.Errorf("network probe interval and timeout must not be negative")
	}

	// Validate store backend
	switch cfg.Store.Backend {
	case "", store.BackendNone, store.BackendRedis:
	case store.BackendSQLite:
		if cfg.Store.SQLite.Path == "" {
			return fmt.Errorf("store.sqlite.path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("invalid store.backend: %s (must be 'none', 'sqlite' or 'redis')", cfg.Store.Backend)
	}
	if cfg.Store.TTL < 0 {
		return fmt.Errorf("store.ttl must not be negative")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

// ServiceConfig converts the service section.
func (c *Config) ServiceConfig() service.Config {
	return service.Config{
		MaxRetries:       c.Service.MaxRetries,
		RetryDelay:       c.Service.RetryDelay,
		CacheTTL:         c.Service.CacheTTL,
		BatchConcurrency: c.Service.BatchConcurrency,
		ChunkDelay:       c.Service.ChunkDelay,
		SampleSize:       c.Service.SampleSize,
	}
}

// StoreConfig converts the store section.
func (c *Config) StoreConfig() store.Config {
	return store.Config{
		Backend:    c.Store.Backend,
		SQLitePath: c.Store.SQLite.Path,
		RedisURL:   c.Store.Redis.URL,
		RedisPass:  c.Store.Redis.Password,
		TTL:        c.Store.TTL,
	}
}

// ClientOptions converts the api section, plus the cache TTL from the
// service section, into pokeapi client options.
func (c *Config) ClientOptions() []pokeapi.Option {
	opts := []pokeapi.Option{
		pokeapi.WithBaseURL(c.API.BaseURL),
		pokeapi.WithCacheTTL(c.Service.CacheTTL),
	}
	if c.API.Timeout > 0 {
		opts = append(opts, pokeapi.WithTimeout(c.API.Timeout))
	}
	if c.API.UserAgent != "" {
		opts = append(opts, pokeapi.WithUserAgent(c.API.UserAgent))
	}
	if c.API.RateLimit.QPS > 0 {
		opts = append(opts, pokeapi.WithRateLimit(c.API.RateLimit.QPS, c.API.RateLimit.Burst))
	}
	return opts
}
