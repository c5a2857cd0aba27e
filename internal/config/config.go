// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the oStore runtime configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/olegiv/ostore-go/internal/cache"
)

// Environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath   string `env:"OSTORE_DB_PATH" envDefault:"./data/ostore.db"`
	Env      string `env:"OSTORE_ENV" envDefault:"development"`
	LogLevel string `env:"OSTORE_LOG_LEVEL" envDefault:"info"`

	// Cache configuration
	RedisURL     string `env:"OSTORE_REDIS_URL"`                         // Optional Redis URL for the view cache
	CachePrefix  string `env:"OSTORE_CACHE_PREFIX" envDefault:"ostore:"` // Redis key prefix
	CacheTTL     int    `env:"OSTORE_CACHE_TTL" envDefault:"300"`        // View cache TTL in seconds
	CacheMaxSize int    `env:"OSTORE_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// Autosave configuration
	AutosaveDelayMS   int `env:"OSTORE_AUTOSAVE_DELAY_MS" envDefault:"350"`
	AutosaveMaxWaitMS int `env:"OSTORE_AUTOSAVE_MAX_WAIT_MS" envDefault:"5000"`

	DoSeed bool `env:"OSTORE_DO_SEED" envDefault:"false"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// Level returns the slog level for LogLevel. Load has already validated it.
func (c Config) Level() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

// Cache returns the cache factory settings.
func (c Config) Cache() cache.Config {
	return cache.Config{
		RedisURL:   c.RedisURL,
		Prefix:     c.CachePrefix,
		DefaultTTL: time.Duration(c.CacheTTL) * time.Second,
		MaxSize:    c.CacheMaxSize,
	}
}

// AutosaveDelay is the quiet period before a queued document is saved.
func (c Config) AutosaveDelay() time.Duration {
	return time.Duration(c.AutosaveDelayMS) * time.Millisecond
}

// AutosaveMaxWait bounds how long a burst of edits can postpone a save.
func (c Config) AutosaveMaxWait() time.Duration {
	return time.Duration(c.AutosaveMaxWaitMS) * time.Millisecond
}

// Load parses environment variables and returns a validated Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges that env tags cannot express.
func (c Config) Validate() error {
	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		return fmt.Errorf("OSTORE_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Env)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("OSTORE_LOG_LEVEL: %w", err)
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("OSTORE_DB_PATH must not be empty")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("OSTORE_CACHE_TTL must be positive, got %d", c.CacheTTL)
	}
	if c.CacheMaxSize < 0 {
		return fmt.Errorf("OSTORE_CACHE_MAX_SIZE must not be negative, got %d", c.CacheMaxSize)
	}
	if c.AutosaveDelayMS <= 0 {
		return fmt.Errorf("OSTORE_AUTOSAVE_DELAY_MS must be positive, got %d", c.AutosaveDelayMS)
	}
	if c.AutosaveMaxWaitMS < c.AutosaveDelayMS {
		return fmt.Errorf("OSTORE_AUTOSAVE_MAX_WAIT_MS (%d) must be at least OSTORE_AUTOSAVE_DELAY_MS (%d)",
			c.AutosaveMaxWaitMS, c.AutosaveDelayMS)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		level = slog.LevelDebug
	case "info", "":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
