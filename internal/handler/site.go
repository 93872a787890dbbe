// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTTP handlers of the site: the JSON view
// model endpoints, the combined page payloads, the sitemap, robots.txt and
// health checks.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/aryes-site/internal/content"
	"github.com/olegiv/aryes-site/internal/middleware"
	"github.com/olegiv/aryes-site/internal/service"
)

// HeaderAssembler builds the site header.
type HeaderAssembler interface {
	Header(ctx context.Context, locale content.Locale) (*service.HeaderView, error)
}

// FooterAssembler builds the site footer.
type FooterAssembler interface {
	Footer(ctx context.Context, locale content.Locale) (*service.FooterView, error)
}

// HomeAssembler builds the home page.
type HomeAssembler interface {
	Home(ctx context.Context, locale content.Locale) (*service.HomeView, error)
}

// AdvisoryAssembler builds the advisory page.
type AdvisoryAssembler interface {
	Advisory(ctx context.Context, locale content.Locale) (*service.AdvisoryView, error)
}

// SiteHandler serves the view models of the site.
type SiteHandler struct {
	header   HeaderAssembler
	footer   FooterAssembler
	home     HomeAssembler
	advisory AdvisoryAssembler
	logger   *slog.Logger
}

// SiteServices groups the assemblers used by SiteHandler.
type SiteServices struct {
	Header   HeaderAssembler
	Footer   FooterAssembler
	Home     HomeAssembler
	Advisory AdvisoryAssembler
}

// NewSiteHandler creates a new SiteHandler.
func NewSiteHandler(s SiteServices, logger *slog.Logger) *SiteHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SiteHandler{
		header:   s.Header,
		footer:   s.Footer,
		home:     s.Home,
		advisory: s.Advisory,
		logger:   logger,
	}
}

// PagePayload is everything a page of the site renders.
type PagePayload[T any] struct {
	Header *service.HeaderView `json:"header"`
	Footer *service.FooterView `json:"footer"`
	Page   *T                  `json:"page"`
}

// serveView answers one view model endpoint.
func serveView[T any](h *SiteHandler, w http.ResponseWriter, r *http.Request, what, missingKey string,
	build func(context.Context, content.Locale) (*T, error)) {
	locale := middleware.GetLocale(r)
	view, err := build(r.Context(), locale)
	if err != nil {
		writeStoreError(w, r, h.logger, locale, what, err)
		return
	}
	if view == nil {
		writeNotConfigured(w, locale, missingKey)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Header handles GET /api/{locale}/header.
func (h *SiteHandler) Header(w http.ResponseWriter, r *http.Request) {
	serveView(h, w, r, "header", msgMissingNavigation, h.header.Header)
}

// Footer handles GET /api/{locale}/footer.
func (h *SiteHandler) Footer(w http.ResponseWriter, r *http.Request) {
	serveView(h, w, r, "footer", msgMissingFooter, h.footer.Footer)
}

// Home handles GET /api/{locale}/home.
func (h *SiteHandler) Home(w http.ResponseWriter, r *http.Request) {
	serveView(h, w, r, "home", msgMissingHome, h.home.Home)
}

// Advisory handles GET /api/{locale}/advisory.
func (h *SiteHandler) Advisory(w http.ResponseWriter, r *http.Request) {
	serveView(h, w, r, "advisory", msgMissingAdvisory, h.advisory.Advisory)
}

// servePage assembles the header, the footer and a page concurrently. The
// page is required; a missing header or footer renders as null.
func servePage[T any](h *SiteHandler, w http.ResponseWriter, r *http.Request, what, missingKey string,
	build func(context.Context, content.Locale) (*T, error)) {
	locale := middleware.GetLocale(r)

	var payload PagePayload[T]
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		payload.Header, err = h.header.Header(ctx, locale)
		return err
	})
	g.Go(func() error {
		var err error
		payload.Footer, err = h.footer.Footer(ctx, locale)
		return err
	})
	g.Go(func() error {
		var err error
		payload.Page, err = build(ctx, locale)
		return err
	})
	if err := g.Wait(); err != nil {
		writeStoreError(w, r, h.logger, locale, what, err)
		return
	}
	if payload.Page == nil {
		writeNotConfigured(w, locale, missingKey)
		return
	}

	if payload.Footer != nil {
		payload.Footer.LinkLanguagesTo(r.URL.Path)
	}

	middleware.SetLanguageCookie(w, locale)
	writeJSON(w, http.StatusOK, payload)
}

// HomePage handles GET /{locale}.
func (h *SiteHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	servePage(h, w, r, "home page", msgMissingHome, h.home.Home)
}

// AdvisoryPage handles GET /{locale}/advisory.
func (h *SiteHandler) AdvisoryPage(w http.ResponseWriter, r *http.Request) {
	servePage(h, w, r, "advisory page", msgMissingAdvisory, h.advisory.Advisory)
}
