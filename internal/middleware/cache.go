// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strconv"
)

// CacheControl sets a public Cache-Control header. Content is read from the
// store on every request, so maxAge is kept short for view models and
// longer for derived documents like the sitemap.
func CacheControl(maxAge int) func(http.Handler) http.Handler {
	value := "no-store"
	if maxAge > 0 {
		value = "public, max-age=" + strconv.Itoa(maxAge)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", value)
			next.ServeHTTP(w, r)
		})
	}
}
