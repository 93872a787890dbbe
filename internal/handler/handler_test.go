// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/olegiv/aryes-site/internal/cache"
	"github.com/olegiv/aryes-site/internal/content"
	"github.com/olegiv/aryes-site/internal/docstore"
	"github.com/olegiv/aryes-site/internal/fixtures"
	"github.com/olegiv/aryes-site/internal/i18n"
	"github.com/olegiv/aryes-site/internal/seo"
	"github.com/olegiv/aryes-site/internal/service"
	"github.com/olegiv/aryes-site/internal/testutil"
	"github.com/olegiv/aryes-site/internal/version"
)

func TestMain(m *testing.M) {
	if err := i18n.Init(nil); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

var errStoreDown = errors.New("cms unreachable")

// downStore fails every read and ping.
type downStore struct{}

func (downStore) FindGlobal(context.Context, string, docstore.Options) (json.RawMessage, error) {
	return nil, errStoreDown
}

func (downStore) FindByID(context.Context, string, content.ID, docstore.Options) (json.RawMessage, error) {
	return nil, errStoreDown
}

func (downStore) Find(context.Context, string, docstore.Query) (*docstore.Result, error) {
	return nil, errStoreDown
}

func (downStore) Ping(context.Context) error {
	return errStoreDown
}

// testSite holds a router over store and its collaborators.
type testSite struct {
	router http.Handler
	cache  *cache.MemoryCache
}

func newTestSite(t *testing.T, store docstore.Store, isDev bool) *testSite {
	t.Helper()

	logger := testutil.TestLoggerSilent()
	c := cache.NewMemoryCache(cache.MemoryCacheOptions{})
	t.Cleanup(func() { _ = c.Close() })

	nav := service.NewNavigationService(store, logger)
	sitemap := service.NewSitemapService(nav, c, service.SitemapOptions{
		SiteURL: "https://aryes.ch",
		Locales: i18n.Locales(),
		TTL:     time.Hour,
	}, logger)

	router := NewRouter(RouterConfig{
		Site: NewSiteHandler(SiteServices{
			Header:   nav,
			Footer:   service.NewFooterService(store, logger),
			Home:     service.NewHomeService(store, logger),
			Advisory: service.NewAdvisoryService(store, logger),
		}, logger),
		SEO: NewSEOHandler(sitemap, seo.RobotsConfig{SiteURL: "https://aryes.ch", DisallowAll: isDev}, logger),
		Health: NewHealthHandler(HealthOptions{
			Store:   store,
			Cache:   c,
			Version: version.Info{Version: "v1.2.3"},
			Verbose: isDev,
		}),
		Logger:         logger,
		IsDevelopment:  isDev,
		RequestTimeout: 5 * time.Second,
	})
	return &testSite{router: router, cache: c}
}

// fixtureSite serves the bundled content from a memory store.
func fixtureSite(t *testing.T) (*testSite, *docstore.MemoryBackend) {
	t.Helper()
	engine, backend := testutil.MemoryStore(t, fixtures.SiteYAML)
	return newTestSite(t, engine, false), backend
}

func (s *testSite) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

// decode unmarshals a JSON response body.
func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decoding %q: %v", rr.Body.String(), err)
	}
	return v
}
