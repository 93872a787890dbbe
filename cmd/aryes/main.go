// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/olegiv/aryes-site/internal/cache"
	"github.com/olegiv/aryes-site/internal/config"
	"github.com/olegiv/aryes-site/internal/content"
	"github.com/olegiv/aryes-site/internal/docstore"
	"github.com/olegiv/aryes-site/internal/fixtures"
	"github.com/olegiv/aryes-site/internal/handler"
	"github.com/olegiv/aryes-site/internal/i18n"
	"github.com/olegiv/aryes-site/internal/logging"
	"github.com/olegiv/aryes-site/internal/payload"
	"github.com/olegiv/aryes-site/internal/scheduler"
	"github.com/olegiv/aryes-site/internal/seo"
	"github.com/olegiv/aryes-site/internal/service"
	"github.com/olegiv/aryes-site/internal/store"
	"github.com/olegiv/aryes-site/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

const sitemapJob = "sitemap-refresh"

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "aryes - Aryes Advisory website backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ARYES_STORE            Content store: payload|sqlite|memory (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ARYES_PAYLOAD_URL      Payload CMS base URL (required for payload)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ARYES_PAYLOAD_API_KEY  Payload API key (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ARYES_DB_PATH          SQLite database path (default: ./data/aryes.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ARYES_FIXTURES         YAML content seeded at startup (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ARYES_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ARYES_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ARYES_SITE_URL         Public site URL used in sitemap.xml\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ARYES_REDIS_URL        Redis URL for the shared cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ARYES_SITEMAP_REFRESH  Sitemap refresh schedule, or \"off\" (default: @every 15m)\n")
	}

	flag.Parse()

	info := version.Resolve(version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	})

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		_, _ = fmt.Printf("aryes %s\n", info)
		os.Exit(0)
	}

	if err := run(info); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(info version.Info) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.IsDevelopment())
	slog.SetDefault(logger)
	logger.Info("starting aryes", "version", info.String(), "env", cfg.Env)

	locales := orderedLocales(cfg.Locales, cfg.DefaultLocale)
	i18n.SupportedLanguages = make([]string, len(locales))
	for i, l := range locales {
		i18n.SupportedLanguages[i] = string(l)
	}
	if err := i18n.Init(logger); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cs, err := openStore(ctx, cfg, locales, logger)
	if err != nil {
		return err
	}
	defer cs.close()
	docs := cs.Store

	siteCache := cache.NewCache(ctx, cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	}, logger)
	defer func() {
		if err := siteCache.Close(); err != nil {
			logger.Error("error closing cache", "error", err)
		}
	}()

	nav := service.NewNavigationService(docs, logger)
	sitemap := service.NewSitemapService(nav, siteCache, service.SitemapOptions{
		SiteURL:  cfg.SiteURL,
		Locales:  locales,
		TTL:      time.Duration(cfg.CacheTTL) * time.Second,
		ModTimes: cs.modTimes,
	}, logger)

	jobs := scheduler.New(logger, 0)
	if cfg.SitemapEnabled() {
		if err := jobs.Register(sitemapJob, "Rebuild the sitemap page list", cfg.SitemapRefresh, sitemap.Refresh); err != nil {
			return err
		}
	}
	jobs.Start()
	defer jobs.Stop()
	if cfg.SitemapEnabled() {
		// Warm the sitemap so the first crawler request is served from cache.
		go func() { _ = jobs.Trigger(sitemapJob) }()
	}

	router := handler.NewRouter(handler.RouterConfig{
		Site: handler.NewSiteHandler(handler.SiteServices{
			Header:   nav,
			Footer:   service.NewFooterService(docs, logger),
			Home:     service.NewHomeService(docs, logger),
			Advisory: service.NewAdvisoryService(docs, logger),
		}, logger),
		SEO: handler.NewSEOHandler(sitemap, seo.RobotsConfig{
			SiteURL:     cfg.SiteURL,
			DisallowAll: cfg.IsDevelopment(),
		}, logger),
		Health: handler.NewHealthHandler(handler.HealthOptions{
			Store:         docs,
			Cache:         siteCache,
			Jobs:          jobs,
			Version:       info,
			SchemaVersion: cs.schemaVersion,
			Verbose:       cfg.IsDevelopment(),
		}),
		Logger:         logger,
		IsDevelopment:  cfg.IsDevelopment(),
		RequestTimeout: cfg.RequestTimeout,
		APIRateLimit:   cfg.APIRPS,
		APIBurst:       cfg.APIBurst,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.ServerAddr(), "store", cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// orderedLocales returns the configured locales with the default first.
func orderedLocales(codes []string, defaultLocale string) []content.Locale {
	out := []content.Locale{content.Locale(defaultLocale)}
	for _, c := range codes {
		if c != defaultLocale {
			out = append(out, content.Locale(c))
		}
	}
	return out
}

// contentStore is the store selected by ARYES_STORE. modTimes and
// schemaVersion are only set for the SQLite store.
type contentStore struct {
	docstore.Store
	modTimes      service.ModTimes
	schemaVersion func(context.Context) (int64, error)
	close         func()
}

// openStore builds the content store selected by ARYES_STORE. The returned
// close func releases its resources.
func openStore(ctx context.Context, cfg *config.Config, locales []content.Locale, logger *slog.Logger) (*contentStore, error) {
	schema := docstore.DefaultSchema()
	schema.Locales = slices.Clone(locales)

	switch cfg.Store {
	case config.StorePayload:
		client, err := payload.New(payload.Options{
			BaseURL:        cfg.PayloadURL,
			APIKey:         cfg.PayloadAPIKey,
			AuthCollection: cfg.PayloadAuthCollection,
			RPS:            cfg.PayloadRPS,
			Timeout:        cfg.PayloadTimeout,
		}, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("reading content from payload", "url", cfg.PayloadURL)
		return &contentStore{Store: client, close: func() {}}, nil

	case config.StoreMemory:
		backend := docstore.NewMemoryBackend()
		fx, err := loadFixtures(cfg.Fixtures)
		if err != nil {
			return nil, err
		}
		if err := fx.Apply(ctx, backend); err != nil {
			return nil, fmt.Errorf("loading fixtures: %w", err)
		}
		logger.Info("serving content from memory")
		return &contentStore{Store: docstore.NewEngine(backend, schema, logger), close: func() {}}, nil

	default:
		if dir := filepath.Dir(cfg.DBPath); dir != "" {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("creating data directory: %w", err)
			}
		}

		logger.Info("initializing database", "path", cfg.DBPath)
		db, err := store.NewDB(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		closeDB := func() {
			if err := db.Close(); err != nil {
				logger.Error("error closing database connection", "error", err)
			}
		}

		logger.Info("running database migrations")
		if err := store.Migrate(db); err != nil {
			closeDB()
			return nil, fmt.Errorf("running migrations: %w", err)
		}

		docs := store.NewDocuments(db)
		if err := seedIfNeeded(ctx, cfg, docs); err != nil {
			closeDB()
			return nil, err
		}
		logger.Info("database ready")
		return &contentStore{
			Store:    docstore.NewEngine(docs, schema, logger),
			modTimes: docs,
			schemaVersion: func(ctx context.Context) (int64, error) {
				return store.SchemaVersion(ctx, db)
			},
			close: closeDB,
		}, nil
	}
}

// seedIfNeeded seeds ARYES_FIXTURES when set, and the bundled content
// into an empty database.
func seedIfNeeded(ctx context.Context, cfg *config.Config, docs *store.Documents) error {
	if cfg.Fixtures != "" {
		return store.SeedFile(ctx, docs, cfg.Fixtures)
	}

	counts, err := docs.Counts(ctx)
	if err != nil {
		return fmt.Errorf("counting documents: %w", err)
	}
	for _, n := range counts {
		if n > 0 {
			return nil
		}
	}

	fx, err := fixtures.Site()
	if err != nil {
		return err
	}
	return store.Seed(ctx, docs, fx)
}

func loadFixtures(path string) (*docstore.Fixtures, error) {
	if path != "" {
		return docstore.LoadFixturesFile(path)
	}
	return fixtures.Site()
}
