// Package config loads the service configuration from BABONUS_* environment
// variables.
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/babonus/internal/errors"
)

// Storage backends for bonus flags
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config is the process configuration
type Config struct {
	GRPCPort int `env:"GRPC_PORT" envDefault:"50051"`

	// Store selects where bonus flags are persisted.
	Store string `env:"STORE" envDefault:"memory"`

	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	// RedisSentinelMaster switches to a sentinel-managed failover client.
	RedisSentinelMaster string   `env:"REDIS_SENTINEL_MASTER"`
	RedisSentinelAddrs  []string `env:"REDIS_SENTINEL_ADDRS" envSeparator:","`
	RedisPoolSize       int      `env:"REDIS_POOL_SIZE" envDefault:"10"`
	RedisTLS            bool     `env:"REDIS_TLS"`

	// ScenePath is a JSON scene file loaded at startup.
	ScenePath string `env:"SCENE_PATH"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	SRDEnabled  bool          `env:"SRD_ENABLED"`
	SRDBaseURL  string        `env:"SRD_BASE_URL"`
	SRDTimeout  time.Duration `env:"SRD_TIMEOUT" envDefault:"30s"`
	SRDCacheTTL time.Duration `env:"SRD_CACHE_TTL" envDefault:"24h"`
}

// Prefix is prepended to every variable name
const Prefix = "BABONUS_"

// Load reads the configuration from the process environment
func Load() (*Config, error) {
	return load(env.Options{Prefix: Prefix})
}

// LoadFrom reads the configuration from the given variables instead of the
// process environment
func LoadFrom(environ map[string]string) (*Config, error) {
	return load(env.Options{Prefix: Prefix, Environment: environ})
}

func load(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and cross-field requirements
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.GRPCPort <= 0 || c.GRPCPort > 65535 {
		vb.Fieldf("GRPCPort", "must be between 1 and 65535, got %d", c.GRPCPort)
	}

	switch c.Store {
	case StoreMemory:
	case StoreRedis:
		if c.RedisSentinelMaster == "" && c.RedisAddr == "" {
			vb.RequiredField("RedisAddr")
		}
		if c.RedisSentinelMaster != "" && len(c.RedisSentinelAddrs) == 0 {
			vb.Field("RedisSentinelAddrs", "is required with a sentinel master")
		}
	default:
		vb.Fieldf("Store", "must be %q or %q, got %q", StoreMemory, StoreRedis, c.Store)
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		vb.Fieldf("LogLevel", "unknown level %q", c.LogLevel)
	}

	if c.SRDTimeout < 0 {
		vb.Field("SRDTimeout", "cannot be negative")
	}
	if c.SRDCacheTTL < 0 {
		vb.Field("SRDCacheTTL", "cannot be negative")
	}

	return vb.Build()
}

// SlogLevel returns the configured log level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(strings.TrimSpace(s)))
	return level, err
}
