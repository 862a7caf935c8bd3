package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/pokedex/store"
	"github.com/s0up4200/pokedex/urlutil"
)

const sampleConfig = `
api:
  base_url: http://localhost:8000/api/v2
  timeout: 10s
  rate_limit:
    qps: 20
    burst: 5
service:
  max_retries: 4
  retry_delay: 250ms
  batch_concurrency: 8
store:
  backend: sqlite
  sqlite:
    path: /tmp/pokedex.db
filter:
  presets:
    fast: "stat:speed>100"
    fire: "type:fire"
logging:
  level: debug
  format: json
`

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, urlutil.DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 3, cfg.Service.MaxRetries)
	assert.Equal(t, time.Second, cfg.Service.RetryDelay)
	assert.Equal(t, 6, cfg.Service.BatchConcurrency)
	assert.Equal(t, 100, cfg.Service.SampleSize)
	assert.Equal(t, store.BackendNone, cfg.Store.Backend)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, sampleConfig)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api/v2", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 20.0, cfg.API.RateLimit.QPS)
	assert.Equal(t, 5, cfg.API.RateLimit.Burst)
	assert.Equal(t, 4, cfg.Service.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.Service.RetryDelay)
	assert.Equal(t, 5*time.Minute, cfg.Service.CacheTTL, "unset keys keep defaults")
	assert.Equal(t, "/tmp/pokedex.db", cfg.Store.SQLite.Path)
	assert.Equal(t, map[string]string{"fast": "stat:speed>100", "fire": "type:fire"}, cfg.Filter.Presets)
	assert.Equal(t, "json", cfg.Logging.Format)

	sc := cfg.StoreConfig()
	assert.Equal(t, store.BackendSQLite, sc.Backend)
	assert.Equal(t, "/tmp/pokedex.db", sc.SQLitePath)

	svc := cfg.ServiceConfig()
	assert.Equal(t, 8, svc.BatchConcurrency)
	assert.Len(t, cfg.ClientOptions(), 5)
}

func TestLoadFromSearchPath(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "logging:\n  level: warn\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, sampleConfig)
	t.Setenv("POKEDEX_SERVICE_MAX_RETRIES", "7")
	t.Setenv("POKEDEX_LOGGING_LEVEL", "error")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Service.MaxRetries)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("POKEDEX_SERVER_ADDR=0.0.0.0:9999\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("POKEDEX_SERVER_ADDR") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9999", cfg.Server.Addr)
}

func TestLoadErrors(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err, "an explicit path must exist")

	path := writeConfig(t, dir, "store:\n  backend: memcached\n")
	_, err = Load(path)
	assert.ErrorContains(t, err, "invalid store.backend")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "redis backend", mutate: func(c *Config) { c.Store.Backend = store.BackendRedis }},
		{name: "bad base url", mutate: func(c *Config) { c.API.BaseURL = "not a url" }, wantErr: "api.base_url"},
		{name: "negative timeout", mutate: func(c *Config) { c.API.Timeout = -time.Second }, wantErr: "api.timeout"},
		{name: "negative qps", mutate: func(c *Config) { c.API.RateLimit.QPS = -1 }, wantErr: "api.rate_limit"},
		{name: "negative retries", mutate: func(c *Config) { c.Service.MaxRetries = -1 }, wantErr: "service"},
		{name: "concurrency too high", mutate: func(c *Config) { c.Service.BatchConcurrency = 51 }, wantErr: "service"},
		{name: "negative probe interval", mutate: func(c *Config) { c.Network.ProbeInterval = -time.Second }, wantErr: "network"},
		{name: "sqlite without path", mutate: func(c *Config) {
			c.Store.Backend = store.BackendSQLite
			c.Store.SQLite.Path = ""
		}, wantErr: "store.sqlite.path"},
		{name: "unknown backend", mutate: func(c *Config) { c.Store.Backend = "etcd" }, wantErr: "store.backend"},
		{name: "negative store ttl", mutate: func(c *Config) { c.Store.TTL = -time.Hour }, wantErr: "store.ttl"},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "trace" }, wantErr: "logging level"},
		{name: "bad format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "logging format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
