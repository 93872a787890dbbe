// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/olegiv/aryes-site/internal/cache"
	"github.com/olegiv/aryes-site/internal/content"
	"github.com/olegiv/aryes-site/internal/seo"
)

const sitemapCacheKey = "sitemap:pages"

// ModTimes reports when the documents of a collection last changed.
type ModTimes interface {
	LastModified(ctx context.Context, collection string) (time.Time, error)
}

// SitemapPages is the cached, locale independent page list of the sitemap.
type SitemapPages struct {
	Pages       []seo.SitemapPage `json:"pages"`
	GeneratedAt time.Time         `json:"generatedAt"`
}

// SitemapService lists the public pages of the site. The list is derived
// from the header of the default locale and cached, since it changes only
// when editors change the navigation.
type SitemapService struct {
	nav      *NavigationService
	cache    *cache.TypedCache[SitemapPages]
	modTimes ModTimes
	siteURL  string
	locales  []content.Locale
	logger   *slog.Logger
	now      func() time.Time
}

// SitemapOptions configures a SitemapService.
type SitemapOptions struct {
	SiteURL string
	// Locales lists the site locales, default first.
	Locales []content.Locale
	TTL     time.Duration
	// ModTimes, when set, dates the service and industry pages.
	ModTimes ModTimes
}

// NewSitemapService creates a new SitemapService.
func NewSitemapService(nav *NavigationService, c cache.Cacher, opts SitemapOptions, logger *slog.Logger) *SitemapService {
	if logger == nil {
		logger = slog.Default()
	}
	locales := opts.Locales
	if len(locales) == 0 {
		locales = []content.Locale{content.FallbackLocale}
	}
	return &SitemapService{
		nav:      nav,
		cache:    cache.NewTypedCache[SitemapPages](c, opts.TTL),
		modTimes: opts.ModTimes,
		siteURL:  opts.SiteURL,
		locales:  locales,
		logger:   logger,
		now:      time.Now,
	}
}

// Pages returns the cached page list, building it on a miss.
func (s *SitemapService) Pages(ctx context.Context) (*SitemapPages, error) {
	return s.cache.GetOrSet(ctx, sitemapCacheKey, s.build)
}

// XML renders the sitemap.
func (s *SitemapService) XML(ctx context.Context) ([]byte, error) {
	pages, err := s.Pages(ctx)
	if err != nil {
		return nil, err
	}
	return seo.GenerateSitemap(s.siteURL, s.locales, pages.Pages)
}

// Refresh rebuilds the page list and replaces the cached one.
func (s *SitemapService) Refresh(ctx context.Context) error {
	pages, err := s.build(ctx)
	if err != nil {
		return err
	}
	s.logger.Info("sitemap refreshed", "pages", len(pages.Pages))
	return s.cache.Set(ctx, sitemapCacheKey, pages)
}

func (s *SitemapService) build(ctx context.Context) (*SitemapPages, error) {
	locale := s.locales[0]
	pages := []seo.SitemapPage{
		{Path: "/", ChangeFreq: seo.ChangeFreqDaily, Priority: "1.0"},
		{Path: AdvisoryPath, ChangeFreq: seo.ChangeFreqWeekly, Priority: "0.9"},
	}

	header, err := s.nav.Header(ctx, locale)
	if err != nil {
		return nil, err
	}
	if header != nil {
		for _, item := range header.Items {
			if path, ok := unlocalized(locale, item.Href); ok {
				pages = append(pages, seo.SitemapPage{Path: path, ChangeFreq: seo.ChangeFreqWeekly, Priority: "0.8"})
			}
		}
		servicesMod := s.lastModified(ctx, content.CollectionServices)
		industriesMod := s.lastModified(ctx, content.CollectionIndustries)
		for _, item := range header.Items {
			if item.MegaMenu == nil {
				continue
			}
			for _, col := range item.MegaMenu.ServiceCategories {
				for _, svc := range col.Services {
					pages = appendDetail(pages, locale, svc.Href, servicesMod)
				}
			}
			for _, ind := range item.MegaMenu.Industries {
				pages = appendDetail(pages, locale, ind.Href, industriesMod)
			}
		}
	}

	return &SitemapPages{Pages: pages, GeneratedAt: s.now()}, nil
}

// lastModified returns the modification time of a collection. Without a
// source, or when it fails, the zero time leaves lastmod out.
func (s *SitemapService) lastModified(ctx context.Context, collection string) time.Time {
	if s.modTimes == nil {
		return time.Time{}
	}
	t, err := s.modTimes.LastModified(ctx, collection)
	if err != nil {
		s.logger.Warn("reading modification time for sitemap", "collection", collection, "error", err)
		return time.Time{}
	}
	return t
}

func appendDetail(pages []seo.SitemapPage, locale content.Locale, href string, updated time.Time) []seo.SitemapPage {
	if path, ok := unlocalized(locale, href); ok {
		pages = append(pages, seo.SitemapPage{
			Path:       path,
			ChangeFreq: seo.ChangeFreqMonthly,
			Priority:   "0.7",
			UpdatedAt:  updated,
		})
	}
	return pages
}

// unlocalized strips the locale prefix of an internal href. External links
// report false.
func unlocalized(locale content.Locale, href string) (string, bool) {
	prefix := "/" + string(locale)
	switch {
	case href == prefix:
		return "/", true
	case strings.HasPrefix(href, prefix+"/"):
		return href[len(prefix):], true
	default:
		return "", false
	}
}
