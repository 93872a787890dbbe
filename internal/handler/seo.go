// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/olegiv/aryes-site/internal/seo"
)

// SitemapRenderer renders sitemap.xml.
type SitemapRenderer interface {
	XML(ctx context.Context) ([]byte, error)
}

// SEOHandler serves sitemap.xml and robots.txt.
type SEOHandler struct {
	sitemap SitemapRenderer
	robots  string
	logger  *slog.Logger
}

// NewSEOHandler creates a new SEOHandler. robots.txt is built once.
func NewSEOHandler(sitemap SitemapRenderer, robots seo.RobotsConfig, logger *slog.Logger) *SEOHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SEOHandler{
		sitemap: sitemap,
		robots:  seo.NewRobotsBuilder(robots).Build(),
		logger:  logger,
	}
}

// Sitemap handles GET /sitemap.xml.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	data, err := h.sitemap.XML(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to build sitemap", "error", err)
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(data)
}

// Robots handles GET /robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(h.robots))
}
