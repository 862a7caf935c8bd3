package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Service ServiceConfig `mapstructure:"service"`
	Network NetworkConfig `mapstructure:"network"`
	Store   StoreConfig   `mapstructure:"store"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds PokeAPI connection details
type APIConfig struct {
	BaseURL   string          `mapstructure:"base_url"`
	Timeout   time.Duration   `mapstructure:"timeout"`
	UserAgent string          `mapstructure:"user_agent"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig throttles outgoing requests. A zero QPS disables it.
type RateLimitConfig struct {
	QPS   float64 `mapstructure:"qps"`
	Burst int     `mapstructure:"burst"`
}

// ServiceConfig tunes retries, caching and batching
type ServiceConfig struct {
	MaxRetries       int           `mapstructure:"max_retries"`
	RetryDelay       time.Duration `mapstructure:"retry_delay"`
	CacheTTL         time.Duration `mapstructure:"cache_ttl"`
	BatchConcurrency int           `mapstructure:"batch_concurrency"`
	ChunkDelay       time.Duration `mapstructure:"chunk_delay"`
	SampleSize       int           `mapstructure:"sample_size"`
}

// NetworkConfig controls connectivity probing. An empty probe URL keeps
// the monitor permanently online.
type NetworkConfig struct {
	ProbeURL      string        `mapstructure:"probe_url"`
	ProbeInterval time.Duration `mapstructure:"probe_interval"`
	ProbeTimeout  time.Duration `mapstructure:"probe_timeout"`
}

// StoreConfig selects the offline response store
type StoreConfig struct {
	Backend string        `mapstructure:"backend"`
	TTL     time.Duration `mapstructure:"ttl"`
	SQLite  SQLiteConfig  `mapstructure:"sqlite"`
	Redis   RedisConfig   `mapstructure:"redis"`
}

// SQLiteConfig holds the SQLite store location
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// RedisConfig holds Redis connection details
type RedisConfig struct {
	URL      string `mapstructure:"url"`
	Password string `mapstructure:"password"`
}

// FilterConfig contains named filter presets
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// ServerConfig holds the HTTP server settings
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
