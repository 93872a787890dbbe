// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/aryes-site/internal/middleware"
)

// RouterConfig holds the handlers and settings of the site router.
type RouterConfig struct {
	Site   *SiteHandler
	SEO    *SEOHandler
	Health *HealthHandler
	Logger *slog.Logger

	IsDevelopment  bool
	RequestTimeout time.Duration
	// APIRateLimit is the per client /api budget in requests per second.
	// Zero disables rate limiting.
	APIRateLimit float64
	APIBurst     int
}

// NewRouter wires the site routes.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestContext)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.GetHead)
	r.Use(chimw.Compress(5, "application/json", "application/xml", "text/plain"))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment)))
	r.Use(middleware.LocaleRedirect)

	// Health routes are not bounded by the request timeout: they bound their
	// own checks.
	r.Get(RouteHealth, cfg.Health.Health)
	r.Get(RouteHealthLive, cfg.Health.Live)
	r.Get(RouteHealthReady, cfg.Health.Ready)

	r.Group(func(r chi.Router) {
		if cfg.RequestTimeout > 0 {
			r.Use(middleware.Timeout(cfg.RequestTimeout))
		}

		r.With(middleware.CacheControl(3600)).Get(RouteSitemap, cfg.SEO.Sitemap)
		r.With(middleware.CacheControl(86400)).Get(RouteRobots, cfg.SEO.Robots)

		r.Route(RouteAPILocale, func(r chi.Router) {
			if cfg.APIRateLimit > 0 {
				r.Use(middleware.APIRateLimit(cfg.APIRateLimit, max(cfg.APIBurst, 1), logger))
			}
			r.Use(middleware.Locale)
			r.Use(middleware.CacheControl(0))
			r.Get(RouteHeader, cfg.Site.Header)
			r.Get(RouteFooter, cfg.Site.Footer)
			r.Get(RouteHome, cfg.Site.Home)
			r.Get(RouteAdvisory, cfg.Site.Advisory)
		})

		r.Route(RouteLocale, func(r chi.Router) {
			r.Use(middleware.Locale)
			r.Use(middleware.CacheControl(0))
			r.Get(RouteRoot, cfg.Site.HomePage)
			r.Get(RouteAdvisory, cfg.Site.AdvisoryPage)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") {
			writeJSONError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
			return
		}
		http.NotFound(w, r)
	})

	return r
}
