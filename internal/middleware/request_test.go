// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/aryes-site/internal/logging"
)

func TestRequestContext(t *testing.T) {
	var attrs []slog.Attr
	handler := chimw.RequestID(RequestContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attrs = logging.Attrs(r.Context())
	})))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/en/advisory", nil))

	got := map[string]string{}
	for _, a := range attrs {
		got[a.Key] = a.Value.String()
	}
	if got["path"] != "/en/advisory" {
		t.Errorf("path = %q, want %q", got["path"], "/en/advisory")
	}
	if got["request_id"] == "" {
		t.Error("request_id missing")
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(&buf, nil)))

	handler := RequestContext(RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/en/missing", nil))

	line := buf.String()
	for _, want := range []string{"level=WARN", "status=404", "method=GET", "path=/en/missing"} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %q missing %q", line, want)
		}
	}
}

func TestStripTrailingSlash(t *testing.T) {
	tests := []struct {
		path     string
		wantCode int
		wantLoc  string
	}{
		{"/", http.StatusOK, ""},
		{"/en", http.StatusOK, ""},
		{"/en/", http.StatusMovedPermanently, "/en"},
		{"/en/advisory/?a=1", http.StatusMovedPermanently, "/en/advisory?a=1"},
	}

	handler := StripTrailingSlash(simpleOKHandler)
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rr.Code != tt.wantCode {
				t.Fatalf("Status = %d, want %d", rr.Code, tt.wantCode)
			}
			if got := rr.Header().Get("Location"); got != tt.wantLoc {
				t.Errorf("Location = %q, want %q", got, tt.wantLoc)
			}
		})
	}
}

func TestCacheControl(t *testing.T) {
	tests := []struct {
		maxAge int
		want   string
	}{
		{300, "public, max-age=300"},
		{0, "no-store"},
	}
	for _, tt := range tests {
		rr := httptest.NewRecorder()
		CacheControl(tt.maxAge)(simpleOKHandler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		if got := rr.Header().Get("Cache-Control"); got != tt.want {
			t.Errorf("CacheControl(%d) = %q, want %q", tt.maxAge, got, tt.want)
		}
	}
}
