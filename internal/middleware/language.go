// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/aryes-site/internal/content"
	"github.com/olegiv/aryes-site/internal/i18n"
	"github.com/olegiv/aryes-site/internal/logging"
)

// LanguageCookieName is the cookie holding the visitor's language choice.
const LanguageCookieName = "aryes_lang"

// LocaleParam is the chi URL parameter carrying the locale.
const LocaleParam = "locale"

type localeKey struct{}

// unlocalizedPrefixes are never redirected to a locale.
var unlocalizedPrefixes = []string{"/api", "/_next", "/admin"}

// WithLocale stores locale in ctx.
func WithLocale(ctx context.Context, locale content.Locale) context.Context {
	return context.WithValue(ctx, localeKey{}, locale)
}

// GetLocale returns the request locale, or the default locale when the
// request did not pass through Locale.
func GetLocale(r *http.Request) content.Locale {
	if locale, ok := r.Context().Value(localeKey{}).(content.Locale); ok {
		return locale
	}
	return content.Locale(i18n.DefaultLanguage())
}

// PreferredLocale picks the locale for a request without one in its path.
// Priority: language cookie, Accept-Language header, default locale.
func PreferredLocale(r *http.Request) string {
	if cookie, err := r.Cookie(LanguageCookieName); err == nil && i18n.IsSupported(cookie.Value) {
		return strings.ToLower(cookie.Value)
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		return i18n.MatchLanguage(accept)
	}
	return i18n.DefaultLanguage()
}

// LocaleRedirect sends requests whose path does not start with a
// supported locale to the same path under the preferred locale.
func LocaleRedirect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path
		if skipLocaleRedirect(p) || i18n.IsSupported(firstSegment(p)) {
			next.ServeHTTP(w, r)
			return
		}

		target := "/" + PreferredLocale(r)
		if p != "/" {
			target += p
		}
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusFound)
	})
}

func skipLocaleRedirect(p string) bool {
	if strings.HasPrefix(p, "/health") {
		return true
	}
	for _, prefix := range unlocalizedPrefixes {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	// sitemap.xml, robots.txt, favicon.ico and other files
	return path.Ext(p) != ""
}

func firstSegment(p string) string {
	p = strings.TrimPrefix(p, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		return p[:i]
	}
	return p
}

// Locale validates the {locale} URL parameter and stores it in the request
// context. Unsupported locales get a 404.
func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		param := chi.URLParam(r, LocaleParam)
		if !i18n.IsSupported(param) {
			if isAPIRequest(r) {
				WriteAPIError(w, http.StatusNotFound, "unsupported locale: "+param)
				return
			}
			http.NotFound(w, r)
			return
		}

		locale := content.Locale(strings.ToLower(param))
		ctx := WithLocale(r.Context(), locale)
		ctx = logging.WithAttrs(ctx, slog.String("locale", string(locale)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SetLanguageCookie remembers the visitor's language choice for a year.
func SetLanguageCookie(w http.ResponseWriter, locale content.Locale) {
	http.SetCookie(w, &http.Cookie{
		Name:     LanguageCookieName,
		Value:    string(locale),
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func isAPIRequest(r *http.Request) bool {
	return r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/")
}
