package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
log_level: debug
cache:
  backend: redis
  redis:
    addr: localhost:6379
    prefix: "demo:page:"
    ttl: 5m
animation:
  selector: ".fade"
  timeout: 2s
plugins:
  metrics:
    enabled: true
site:
  name: demo
  pages:
    - path: /
      title: Home
      body: "<h1>Home</h1>"
  redirects:
    /old: /
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "swoop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, "demo:page:", cfg.Cache.Redis.Prefix)
	assert.Equal(t, 5*time.Minute, cfg.Cache.Redis.TTL.Std())
	assert.Equal(t, ".fade", cfg.Animation.Selector)
	assert.Equal(t, 2*time.Second, cfg.Animation.Timeout.Std())
	require.NotNil(t, cfg.Site)
	assert.Equal(t, "demo", cfg.Site.Name)
	require.Len(t, cfg.Site.Pages, 1)
	assert.Equal(t, "/", cfg.Site.Redirects["/old"])

	enabled, err := cfg.MetricsEnabled()
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestLoadConfig_EmptyPathIsZeroConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Cache.Backend)

	enabled, err := cfg.MetricsEnabled()
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestMetricsEnabled_RejectsUnknownKeys(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
plugins:
  metrics:
    enabld: true
`))
	require.NoError(t, err)

	_, err = cfg.MetricsEnabled()
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	for input, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"":        slog.LevelWarn,
		"Warning": slog.LevelWarn,
		"error":   slog.LevelError,
	} {
		got, err := ParseLevel(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestEngineOptions_UnknownBackend(t *testing.T) {
	cfg := Config{Cache: CacheConfig{Backend: "bolt"}}
	_, cleanup, err := cfg.EngineOptions(slog.Default())
	defer cleanup()
	require.Error(t, err)
}
