// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"log/slog"
	"net/url"
	"time"
)

// Config selects and configures the cache backend.
type Config struct {
	// RedisURL selects Redis when set, the memory cache otherwise.
	RedisURL        string
	Prefix          string
	DefaultTTL      time.Duration
	MaxSize         int
	CleanupInterval time.Duration
}

// DefaultConfig returns a memory cache configuration.
func DefaultConfig() Config {
	return Config{
		Prefix:          "aryes:",
		DefaultTTL:      time.Hour,
		MaxSize:         1000,
		CleanupInterval: time.Minute,
	}
}

// NewCache creates the configured cache. When Redis is configured but
// cannot be reached, the memory cache is used and a warning is logged so
// the site keeps serving.
func NewCache(ctx context.Context, cfg Config, logger *slog.Logger) Cacher {
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.RedisURL != "" {
		opts := DefaultRedisCacheOptions()
		opts.URL = cfg.RedisURL
		if cfg.Prefix != "" {
			opts.Prefix = cfg.Prefix
		}
		if cfg.DefaultTTL > 0 {
			opts.DefaultTTL = cfg.DefaultTTL
		}

		c, err := NewRedisCache(ctx, opts)
		if err == nil {
			logger.Info("using redis cache", "url", SanitizeRedisURL(cfg.RedisURL), "prefix", opts.Prefix)
			return c
		}
		logger.Warn("redis unavailable, falling back to memory cache",
			"url", SanitizeRedisURL(cfg.RedisURL), "error", err)
	}

	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxSize:         cfg.MaxSize,
		CleanupInterval: cfg.CleanupInterval,
	})
}

// SanitizeRedisURL masks the password of a Redis URL for logging.
func SanitizeRedisURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "[invalid URL]"
	}
	if u.User != nil {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), "***")
		}
	}
	return u.String()
}
