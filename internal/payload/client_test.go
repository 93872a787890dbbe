// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package payload

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/aryes-site/internal/content"
	"github.com/olegiv/aryes-site/internal/docstore"
	"github.com/olegiv/aryes-site/internal/testutil"
)

type recorded struct {
	mu       sync.Mutex
	requests []*http.Request
}

func (r *recorded) last() *http.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests[len(r.requests)-1]
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts Options) (*Client, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.mu.Lock()
		rec.requests = append(rec.requests, r)
		rec.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	opts.BaseURL = srv.URL
	c, err := New(opts, testutil.TestLogger())
	require.NoError(t, err)
	return c, rec
}

func TestFindGlobal(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":1,"globalType":"navigation","items":[{"label":"Advisory","href":"/advisory","megaMenu":7}]}`))
	}, Options{APIKey: "k3y", AuthCollection: "api-users"})

	nav, err := docstore.Global[content.Navigation](context.Background(), c, content.GlobalNavigation,
		docstore.Options{Locale: content.LocaleFR, Depth: 3})
	require.NoError(t, err)
	require.Len(t, nav.Items, 1)
	assert.True(t, nav.Items[0].MegaMenu.IsBare())

	req := rec.last()
	assert.Equal(t, "/api/globals/navigation", req.URL.Path)
	assert.Equal(t, "fr", req.URL.Query().Get("locale"))
	assert.Equal(t, "en", req.URL.Query().Get("fallback-locale"))
	assert.Equal(t, "3", req.URL.Query().Get("depth"))
	assert.Equal(t, "api-users API-Key k3y", req.Header.Get("Authorization"))
}

func TestFindGlobalEmptyIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{"never saved", `{"globalType":"advisory-page","createdAt":"2025-01-01T00:00:00Z"}`, http.StatusOK},
		{"empty object", `{}`, http.StatusOK},
		{"404", `{"errors":[{"message":"Not Found"}]}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				_, _ = w.Write([]byte(tt.body))
			}, Options{})

			_, err := c.FindGlobal(context.Background(), content.GlobalAdvisoryPage, docstore.Options{Locale: content.LocaleEN})
			assert.ErrorIs(t, err, docstore.ErrNotFound)
		})
	}
}

func TestFindByID(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/mega-menus/404" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"id":7,"name":"Advisory","industries":[{"id":9,"name":"Fintech"}]}`))
	}, Options{})
	ctx := context.Background()

	menu, err := docstore.ByID[content.MegaMenu](ctx, c, content.CollectionMegaMenus, 7, docstore.Options{Locale: content.LocaleEN, Depth: 3})
	require.NoError(t, err)
	assert.Equal(t, "Advisory", menu.Name)
	assert.True(t, menu.Industries[0].IsExpanded())
	assert.Equal(t, "/api/mega-menus/7", rec.last().URL.Path)
	assert.Empty(t, rec.last().Header.Get("Authorization"))

	_, err = c.FindByID(ctx, content.CollectionMegaMenus, 404, docstore.Options{})
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestFind(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"docs":[{"id":4,"title":"B"},{"id":3,"title":"A"}],"totalDocs":2,"limit":2,"page":1}`))
	}, Options{})

	svcs, err := docstore.FindAll[content.Service](context.Background(), c, content.CollectionServices, docstore.Query{
		Options: docstore.Options{Locale: content.LocaleEN, Depth: 1},
		Where:   []docstore.Condition{docstore.IDIn(3, 4)},
		Limit:   2,
		Sort:    "-id",
	})
	require.NoError(t, err)
	require.Len(t, svcs, 2)
	assert.Equal(t, "B", svcs[0].Title)

	q := rec.last().URL.Query()
	assert.Equal(t, "/api/services", rec.last().URL.Path)
	assert.Equal(t, "3,4", q.Get("where[id][in]"))
	assert.Equal(t, "2", q.Get("limit"))
	assert.Equal(t, "-id", q.Get("sort"))
	assert.Equal(t, "1", q.Get("depth"))
}

func TestAPIError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"errors":[{"message":"You are not allowed to perform this action."}]}`))
	}, Options{})

	_, err := c.FindGlobal(context.Background(), content.GlobalFooter, docstore.Options{})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "err = %v", err)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, []string{"You are not allowed to perform this action."}, apiErr.Messages)
	assert.Contains(t, apiErr.Error(), "/api/globals/footer")
	assert.False(t, errors.Is(err, docstore.ErrNotFound))
}

func TestServerErrorPlainBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}, Options{})

	err := c.Ping(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, []string{"bad gateway"}, apiErr.Messages)
}

func TestPing(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}, Options{})
	assert.NoError(t, c.Ping(context.Background()), "404 still means the API answers")
}

func TestContextCanceled(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}, Options{RPS: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.FindByID(ctx, content.CollectionServices, 1, docstore.Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewInvalidBaseURL(t *testing.T) {
	for _, base := range []string{"", "cms.local", "://bad"} {
		if _, err := New(Options{BaseURL: base}, nil); err == nil {
			t.Errorf("New(%q) should fail", base)
		}
	}
}

func TestBasePathIsKept(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"id":1}`))
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL + "/cms/"}, nil)
	require.NoError(t, err)
	_, err = c.FindByID(context.Background(), content.CollectionMedia, 1, docstore.Options{})
	require.NoError(t, err)
	assert.Equal(t, "/cms/api/media/1", gotPath)
}
