// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Content store drivers.
const (
	StorePayload = "payload"
	StoreSQLite  = "sqlite"
	StoreMemory  = "memory"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ServerHost     string        `env:"ARYES_SERVER_HOST" envDefault:"localhost"`
	ServerPort     int           `env:"ARYES_SERVER_PORT" envDefault:"8080"`
	Env            string        `env:"ARYES_ENV" envDefault:"development"`
	LogLevel       string        `env:"ARYES_LOG_LEVEL" envDefault:"info"`
	SiteURL        string        `env:"ARYES_SITE_URL" envDefault:"http://localhost:8080"`
	RequestTimeout time.Duration `env:"ARYES_REQUEST_TIMEOUT" envDefault:"30s"`
	APIRPS         float64       `env:"ARYES_API_RPS" envDefault:"10"` // per client; 0 disables
	APIBurst       int           `env:"ARYES_API_BURST" envDefault:"20"`

	// Locales
	Locales       []string `env:"ARYES_LOCALES" envSeparator:"," envDefault:"en,fr"`
	DefaultLocale string   `env:"ARYES_DEFAULT_LOCALE" envDefault:"en"`

	// Content store
	Store                 string        `env:"ARYES_STORE" envDefault:"sqlite"`
	PayloadURL            string        `env:"ARYES_PAYLOAD_URL"`
	PayloadAPIKey         string        `env:"ARYES_PAYLOAD_API_KEY"`
	PayloadAuthCollection string        `env:"ARYES_PAYLOAD_AUTH_COLLECTION" envDefault:"users"`
	PayloadRPS            float64       `env:"ARYES_PAYLOAD_RPS" envDefault:"20"` // 0 disables client side rate limiting
	PayloadTimeout        time.Duration `env:"ARYES_PAYLOAD_TIMEOUT" envDefault:"10s"`
	DBPath                string        `env:"ARYES_DB_PATH" envDefault:"./data/aryes.db"`
	Fixtures              string        `env:"ARYES_FIXTURES"` // YAML documents seeded at startup

	// Cache configuration
	RedisURL       string `env:"ARYES_REDIS_URL"`                        // Optional Redis URL for distributed caching
	CachePrefix    string `env:"ARYES_CACHE_PREFIX" envDefault:"aryes:"` // Redis key prefix
	CacheTTL       int    `env:"ARYES_CACHE_TTL" envDefault:"3600"`      // Default cache TTL in seconds
	CacheMaxSize   int    `env:"ARYES_CACHE_MAX_SIZE" envDefault:"1000"` // Max memory cache entries
	SitemapRefresh string `env:"ARYES_SITEMAP_REFRESH" envDefault:"@every 15m"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// SitemapEnabled returns true if the sitemap refresh job is scheduled.
func (c Config) SitemapEnabled() bool {
	return c.SitemapRefresh != "" && c.SitemapRefresh != "off"
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Store == StorePayload && cfg.PayloadAPIKey == "" {
		slog.Warn("ARYES_PAYLOAD_API_KEY is not set; only publicly readable content will be served")
	}

	return cfg, nil
}

// Validate checks option combinations that env tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	switch c.Store {
	case StorePayload:
		if c.PayloadURL == "" {
			errs = append(errs, errors.New("ARYES_PAYLOAD_URL is required when ARYES_STORE=payload"))
		} else if u, err := url.Parse(c.PayloadURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("ARYES_PAYLOAD_URL %q is not an absolute URL", c.PayloadURL))
		}
		if c.PayloadRPS < 0 {
			errs = append(errs, errors.New("ARYES_PAYLOAD_RPS must not be negative"))
		}
	case StoreSQLite, StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("ARYES_STORE %q is not one of payload, sqlite, memory", c.Store))
	}

	for i, l := range c.Locales {
		c.Locales[i] = strings.ToLower(strings.TrimSpace(l))
	}
	if len(c.Locales) == 0 {
		errs = append(errs, errors.New("ARYES_LOCALES must list at least one locale"))
	} else if !slices.Contains(c.Locales, c.DefaultLocale) {
		errs = append(errs, fmt.Errorf("ARYES_DEFAULT_LOCALE %q is not in ARYES_LOCALES %v", c.DefaultLocale, c.Locales))
	}

	if c.APIRPS < 0 {
		errs = append(errs, errors.New("ARYES_API_RPS must not be negative"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("ARYES_REQUEST_TIMEOUT must be positive"))
	}

	return errors.Join(errs...)
}
