// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	t.Setenv(key, value)
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "OSTORE_") {
			t.Setenv(key, "")
			_ = os.Unsetenv(key)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/ostore.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/ostore.db")
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Env = %q, want %q", cfg.Env, EnvDevelopment)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.CachePrefix != "ostore:" {
		t.Errorf("CachePrefix = %q, want %q", cfg.CachePrefix, "ostore:")
	}
	if cfg.CacheTTL != 300 {
		t.Errorf("CacheTTL = %d, want 300", cfg.CacheTTL)
	}
	if cfg.AutosaveDelay() != 350*time.Millisecond {
		t.Errorf("AutosaveDelay() = %v, want 350ms", cfg.AutosaveDelay())
	}
	if cfg.AutosaveMaxWait() != 5*time.Second {
		t.Errorf("AutosaveMaxWait() = %v, want 5s", cfg.AutosaveMaxWait())
	}
	if cfg.DoSeed {
		t.Error("DoSeed should default to false")
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true")
	}
	if cfg.UseRedisCache() {
		t.Error("UseRedisCache() = true, want false")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	setEnv(t, "OSTORE_DB_PATH", "/custom/path.db")
	setEnv(t, "OSTORE_ENV", "production")
	setEnv(t, "OSTORE_LOG_LEVEL", "debug")
	setEnv(t, "OSTORE_REDIS_URL", "redis://localhost:6379/1")
	setEnv(t, "OSTORE_CACHE_TTL", "60")
	setEnv(t, "OSTORE_AUTOSAVE_DELAY_MS", "100")
	setEnv(t, "OSTORE_AUTOSAVE_MAX_WAIT_MS", "1000")
	setEnv(t, "OSTORE_DO_SEED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "/custom/path.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/custom/path.db")
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true, want false")
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("Level() = %v, want %v", cfg.Level(), slog.LevelDebug)
	}
	if !cfg.UseRedisCache() {
		t.Error("UseRedisCache() = false, want true")
	}
	if !cfg.DoSeed {
		t.Error("DoSeed = false, want true")
	}

	cc := cfg.Cache()
	if cc.RedisURL != "redis://localhost:6379/1" {
		t.Errorf("Cache().RedisURL = %q", cc.RedisURL)
	}
	if cc.DefaultTTL != time.Minute {
		t.Errorf("Cache().DefaultTTL = %v, want 1m", cc.DefaultTTL)
	}
	if cfg.AutosaveDelay() != 100*time.Millisecond {
		t.Errorf("AutosaveDelay() = %v, want 100ms", cfg.AutosaveDelay())
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"unknown env", "OSTORE_ENV", "staging", "OSTORE_ENV"},
		{"unknown log level", "OSTORE_LOG_LEVEL", "verbose", "OSTORE_LOG_LEVEL"},
		{"zero ttl", "OSTORE_CACHE_TTL", "0", "OSTORE_CACHE_TTL"},
		{"negative delay", "OSTORE_AUTOSAVE_DELAY_MS", "-1", "OSTORE_AUTOSAVE_DELAY_MS"},
		{"max wait below delay", "OSTORE_AUTOSAVE_MAX_WAIT_MS", "100", "OSTORE_AUTOSAVE_MAX_WAIT_MS"},
		{"not a number", "OSTORE_CACHE_TTL", "soon", "parsing config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			setEnv(t, tt.key, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := parseLevel(tt.in)
		if err != nil {
			t.Errorf("parseLevel(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
