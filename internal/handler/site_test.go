// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/aryes-site/internal/content"
	"github.com/olegiv/aryes-site/internal/middleware"
	"github.com/olegiv/aryes-site/internal/service"
)

func TestAPIHeader(t *testing.T) {
	site, _ := fixtureSite(t)

	rr := site.get(t, "/api/fr/header")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))

	header := decode[service.HeaderView](t, rr)
	assert.Equal(t, content.LocaleFR, header.Locale)
	assert.Equal(t, "/fr", header.HomeHref)
	require.Len(t, header.Items, 3)
	assert.Equal(t, "Conseil", header.Items[0].Label)
	assert.Equal(t, "/fr/advisory", header.Items[0].Href)
	require.NotNil(t, header.Items[0].MegaMenu)
	assert.Equal(t, "About", header.Items[1].Label, "empty French label falls back to English")
}

func TestAPIViews(t *testing.T) {
	site, _ := fixtureSite(t)

	for _, path := range []string{"/api/en/header", "/api/en/footer", "/api/en/home", "/api/en/advisory"} {
		t.Run(path, func(t *testing.T) {
			rr := site.get(t, path)
			assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		})
	}
}

func TestAPIAdvisory(t *testing.T) {
	site, _ := fixtureSite(t)

	rr := site.get(t, "/api/en/advisory")
	require.Equal(t, http.StatusOK, rr.Code)

	view := decode[service.AdvisoryView](t, rr)
	names := make([]string, len(view.PracticeAreas))
	for i, pa := range view.PracticeAreas {
		names[i] = pa.Category.Name
	}
	assert.Equal(t, []string{"Technology", "Tax"}, names)
	assert.NotNil(t, view.PracticeAreas[1].Services)
}

func TestAPINotConfigured(t *testing.T) {
	tests := []struct {
		path   string
		global string
		want   string
	}{
		{"/api/en/header", content.GlobalNavigation, "Navigation is not configured."},
		{"/api/en/footer", content.GlobalFooter, "Footer is not configured."},
		{"/api/en/home", content.GlobalHomePage, "Home page content is not configured."},
		{"/api/en/advisory", content.GlobalAdvisoryPage, "Advisory page content is not configured."},
	}

	for _, tt := range tests {
		t.Run(tt.global, func(t *testing.T) {
			site, backend := fixtureSite(t)
			backend.DeleteGlobal(tt.global)

			rr := site.get(t, tt.path)
			require.Equal(t, http.StatusNotFound, rr.Code)
			assert.Equal(t, tt.want, decode[middleware.APIError](t, rr).Error)
		})
	}
}

func TestAPIStoreFailure(t *testing.T) {
	site := newTestSite(t, downStore{}, false)

	for _, path := range []string{"/api/en/header", "/api/fr/footer", "/api/en/home", "/api/en/advisory"} {
		t.Run(path, func(t *testing.T) {
			rr := site.get(t, path)
			require.Equal(t, http.StatusBadGateway, rr.Code)
			assert.NotContains(t, rr.Body.String(), errStoreDown.Error(), "store errors are not exposed")
		})
	}
}

func TestAPIUnsupportedLocale(t *testing.T) {
	site, _ := fixtureSite(t)

	rr := site.get(t, "/api/de/header")
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	rr = site.get(t, "/api/en/unknown")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestHomePage(t *testing.T) {
	site, _ := fixtureSite(t)

	rr := site.get(t, "/fr")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	payload := decode[PagePayload[service.HomeView]](t, rr)
	require.NotNil(t, payload.Header)
	require.NotNil(t, payload.Footer)
	require.NotNil(t, payload.Page)
	assert.Equal(t, content.LocaleFR, payload.Page.Locale)
	assert.Equal(t, content.LocaleFR, payload.Footer.Locale)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.LanguageCookieName, cookies[0].Name)
	assert.Equal(t, "fr", cookies[0].Value)
}

func TestAdvisoryPage(t *testing.T) {
	site, _ := fixtureSite(t)

	rr := site.get(t, "/en/advisory")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	payload := decode[PagePayload[service.AdvisoryView]](t, rr)
	require.NotNil(t, payload.Page)
	assert.NotEmpty(t, payload.Page.PracticeAreas)
}

func TestPageLanguageLinksKeepPath(t *testing.T) {
	site, _ := fixtureSite(t)

	rr := site.get(t, "/fr/advisory")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	payload := decode[PagePayload[service.AdvisoryView]](t, rr)
	require.NotNil(t, payload.Footer)
	require.Len(t, payload.Footer.Languages, 2)
	assert.Equal(t, "/en/advisory", payload.Footer.Languages[0].Href)
	assert.Equal(t, "/fr/advisory", payload.Footer.Languages[1].Href)

	// The footer endpoint has no page to keep.
	rr = site.get(t, "/api/fr/footer")
	require.Equal(t, http.StatusOK, rr.Code)
	footer := decode[service.FooterView](t, rr)
	assert.Equal(t, "/en", footer.Languages[0].Href)
}

func TestPageWithoutHeader(t *testing.T) {
	site, backend := fixtureSite(t)
	backend.DeleteGlobal(content.GlobalNavigation)

	rr := site.get(t, "/en")
	require.Equal(t, http.StatusOK, rr.Code)
	payload := decode[PagePayload[service.HomeView]](t, rr)
	assert.Nil(t, payload.Header)
	assert.NotNil(t, payload.Page)
}

func TestPageMissing(t *testing.T) {
	site, backend := fixtureSite(t)
	backend.DeleteGlobal(content.GlobalAdvisoryPage)

	rr := site.get(t, "/en/advisory")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Empty(t, rr.Result().Cookies())
}

func TestPageStoreFailure(t *testing.T) {
	site := newTestSite(t, downStore{}, false)

	rr := site.get(t, "/en")
	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestRedirects(t *testing.T) {
	site, _ := fixtureSite(t)

	tests := []struct {
		path   string
		accept string
		want   string
	}{
		{"/", "", "/en"},
		{"/", "fr-CH,fr;q=0.9", "/fr"},
		{"/advisory", "", "/en/advisory"},
	}
	for _, tt := range tests {
		t.Run(tt.path+" "+tt.accept, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			rr := httptest.NewRecorder()
			site.router.ServeHTTP(rr, req)
			require.Equal(t, http.StatusFound, rr.Code)
			assert.Equal(t, tt.want, rr.Header().Get("Location"))
		})
	}

	rr := site.get(t, "/de/advisory")
	assert.Equal(t, http.StatusFound, rr.Code, "unsupported locale prefix is an ordinary path")
	assert.Equal(t, "/en/de/advisory", rr.Header().Get("Location"))
	assert.Equal(t, http.StatusNotFound, site.get(t, "/en/de/advisory").Code)

	rr = site.get(t, "/en/advisory/")
	assert.Equal(t, http.StatusMovedPermanently, rr.Code)
	assert.Equal(t, "/en/advisory", rr.Header().Get("Location"))
}

func TestSecurityHeadersApplied(t *testing.T) {
	site, _ := fixtureSite(t)

	rr := site.get(t, "/en")
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rr.Header().Get("Strict-Transport-Security"))
}
