// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/aryes-site/internal/cache"
	"github.com/olegiv/aryes-site/internal/content"
	"github.com/olegiv/aryes-site/internal/docstore"
	"github.com/olegiv/aryes-site/internal/testutil"
)

func newTestSitemapService(t *testing.T, store docstore.Store) (*SitemapService, *cache.MemoryCache) {
	t.Helper()
	c := cache.NewMemoryCache(cache.MemoryCacheOptions{})
	t.Cleanup(func() { _ = c.Close() })

	svc := NewSitemapService(NewNavigationService(store, testutil.TestLogger()), c, SitemapOptions{
		SiteURL: "https://aryes.ch",
		Locales: []content.Locale{content.LocaleEN, content.LocaleFR},
	}, testutil.TestLogger())
	return svc, c
}

func pagePaths(p *SitemapPages) []string {
	paths := make([]string, len(p.Pages))
	for i, page := range p.Pages {
		paths[i] = page.Path
	}
	return paths
}

func TestSitemap_Pages(t *testing.T) {
	engine, _ := siteStore(t)
	svc, _ := newTestSitemapService(t, engine)

	pages, err := svc.Pages(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/",
		"/advisory",
		"/advisory",
		"/about",
		"/contact",
		"/advisory/services/a",
		"/advisory/services/b",
		"/advisory/industries/fintech",
		"/advisory/industries/health",
	}, pagePaths(pages))
}

func TestSitemap_XML(t *testing.T) {
	engine, _ := siteStore(t)
	svc, _ := newTestSitemapService(t, engine)

	data, err := svc.XML(context.Background())
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "<loc>https://aryes.ch/en</loc>")
	assert.Contains(t, out, "<loc>https://aryes.ch/fr/advisory/services/a</loc>")
	// Duplicate paths appear once per locale.
	assert.Equal(t, 1, strings.Count(out, "<loc>https://aryes.ch/en/advisory</loc>"))
}

func TestSitemap_IsCached(t *testing.T) {
	engine, backend := siteStore(t)
	svc, c := newTestSitemapService(t, engine)
	ctx := context.Background()

	first, err := svc.Pages(ctx)
	require.NoError(t, err)

	// Content changes are not visible until the next refresh.
	backend.Delete(content.CollectionServices, 4)
	cached, err := svc.Pages(ctx)
	require.NoError(t, err)
	assert.Equal(t, pagePaths(first), pagePaths(cached))
	assert.Positive(t, c.Stats().Hits)

	require.NoError(t, svc.Refresh(ctx))
	refreshed, err := svc.Pages(ctx)
	require.NoError(t, err)
	assert.NotContains(t, pagePaths(refreshed), "/advisory/services/b")
}

func TestSitemap_WithoutNavigation(t *testing.T) {
	engine, backend := siteStore(t)
	backend.DeleteGlobal(content.GlobalNavigation)
	svc, _ := newTestSitemapService(t, engine)

	pages, err := svc.Pages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"/", "/advisory"}, pagePaths(pages))
}

func TestSitemap_StoreErrorIsNotCached(t *testing.T) {
	engine, _ := siteStore(t)
	svc, c := newTestSitemapService(t, failingStore{Store: engine, fail: []string{content.GlobalNavigation}})

	_, err := svc.Pages(context.Background())
	require.True(t, errors.Is(err, errStoreDown), "got %v", err)
	assert.Zero(t, c.Stats().Items)
}

func TestUnlocalized(t *testing.T) {
	tests := []struct {
		href   string
		want   string
		wantOK bool
	}{
		{"/en", "/", true},
		{"/en/advisory", "/advisory", true},
		{"/fr/advisory", "", false},
		{"/english", "", false},
		{"https://example.com", "", false},
	}
	for _, tt := range tests {
		got, ok := unlocalized(content.LocaleEN, tt.href)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("unlocalized(%q) = %q, %v; want %q, %v", tt.href, got, ok, tt.want, tt.wantOK)
		}
	}
}

type fixedModTimes map[string]time.Time

func (m fixedModTimes) LastModified(_ context.Context, collection string) (time.Time, error) {
	if t, ok := m[collection]; ok {
		return t, nil
	}
	return time.Time{}, errStoreDown
}

func TestSitemap_LastModified(t *testing.T) {
	engine, _ := siteStore(t)
	updated := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	c := cache.NewMemoryCache(cache.MemoryCacheOptions{})
	t.Cleanup(func() { _ = c.Close() })
	svc := NewSitemapService(NewNavigationService(engine, testutil.TestLogger()), c, SitemapOptions{
		SiteURL:  "https://aryes.ch",
		Locales:  []content.Locale{content.LocaleEN, content.LocaleFR},
		ModTimes: fixedModTimes{content.CollectionServices: updated},
	}, testutil.TestLogger())

	pages, err := svc.Pages(context.Background())
	require.NoError(t, err)

	got := map[string]time.Time{}
	for _, p := range pages.Pages {
		got[p.Path] = p.UpdatedAt
	}
	assert.True(t, got["/advisory/services/a"].Equal(updated))
	assert.True(t, got["/advisory/services/b"].Equal(updated))
	// Failed lookups and static pages carry no date.
	assert.True(t, got["/advisory/industries/health"].IsZero())
	assert.True(t, got["/about"].IsZero())

	data, err := svc.XML(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(data), "<lastmod>2026-03-14T09:30:00Z</lastmod>")
}
