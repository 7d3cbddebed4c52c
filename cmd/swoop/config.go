package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/veltran/swoop"
	swoophttp "github.com/veltran/swoop/pkg/adapters/http"
	"github.com/veltran/swoop/pkg/adapters/redis"
	"github.com/veltran/swoop/pkg/observability"
	"github.com/veltran/swoop/pkg/plugins"
)

// Config is the CLI configuration file.
type Config struct {
	LogLevel  string                    `yaml:"log_level"`
	Cache     CacheConfig               `yaml:"cache"`
	Animation AnimationConfig           `yaml:"animation"`
	Plugins   map[string]map[string]any `yaml:"plugins"`
	Site      *swoophttp.Site           `yaml:"site"`
}

// CacheConfig selects and configures the page cache backend.
type CacheConfig struct {
	// Backend is "memory" (default) or "redis".
	Backend  string      `yaml:"backend"`
	Disabled bool        `yaml:"disabled"`
	Redis    RedisConfig `yaml:"redis"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string             `yaml:"addr"`
	Password string             `yaml:"password"`
	DB       int                `yaml:"db"`
	Prefix   string             `yaml:"prefix"`
	TTL      swoophttp.Duration `yaml:"ttl"`
}

// AnimationConfig tunes the animation phases.
type AnimationConfig struct {
	Selector string             `yaml:"selector"`
	Timeout  swoophttp.Duration `yaml:"timeout"`
}

// MetricsOptions are the recognized options of the metrics plugin entry.
type MetricsOptions struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoadConfig reads the config file at path. An empty path yields the
// zero config with defaults applied at use sites.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// MetricsEnabled decodes the metrics plugin entry. Unknown keys in the
// entry are rejected so typos fail loudly.
func (c Config) MetricsEnabled() (bool, error) {
	raw, ok := c.Plugins["metrics"]
	if !ok {
		return false, nil
	}
	var opts MetricsOptions
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &opts,
		ErrorUnused: true,
	})
	if err != nil {
		return false, err
	}
	if err := dec.Decode(raw); err != nil {
		return false, fmt.Errorf("plugins.metrics: %w", err)
	}
	return opts.Enabled, nil
}

// ParseLevel maps a config/flag string to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level: %q", s)
	}
}

// EngineOptions translates the config into engine options. The returned
// cleanup closes any backend connections and is safe to call always.
func (c Config) EngineOptions(logger *slog.Logger) ([]swoop.Option, func(), error) {
	opts := []swoop.Option{swoop.WithLogger(logger)}
	cleanup := func() {}

	switch strings.ToLower(c.Cache.Backend) {
	case "", "memory":
	case "redis":
		redisOpts := []redis.Option{}
		if c.Cache.Redis.Prefix != "" {
			redisOpts = append(redisOpts, redis.WithPrefix(c.Cache.Redis.Prefix))
		}
		if c.Cache.Redis.TTL > 0 {
			redisOpts = append(redisOpts, redis.WithTTL(c.Cache.Redis.TTL.Std()))
		}
		cache := redis.New(c.Cache.Redis.Addr, c.Cache.Redis.Password, c.Cache.Redis.DB, redisOpts...)
		opts = append(opts, swoop.WithCache(cache))
		cleanup = func() {
			if err := cache.Close(); err != nil {
				logger.Warn("closing redis cache", "err", err)
			}
		}
	default:
		return nil, cleanup, fmt.Errorf("unknown cache backend: %q", c.Cache.Backend)
	}

	if c.Cache.Disabled {
		opts = append(opts, swoop.WithCacheDisabled())
	}
	if c.Animation.Selector != "" {
		opts = append(opts, swoop.WithAnimationSelector(c.Animation.Selector))
	}
	if c.Animation.Timeout > 0 {
		opts = append(opts, swoop.WithAnimationTimeout(c.Animation.Timeout.Std()))
	}

	enabled, err := c.MetricsEnabled()
	if err != nil {
		return nil, cleanup, err
	}
	if enabled {
		opts = append(opts, swoop.WithPlugins(pluginSet()...))
	}
	return opts, cleanup, nil
}

func pluginSet() []plugins.Plugin {
	return []plugins.Plugin{observability.NewMetricsPlugin()}
}
