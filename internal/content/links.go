// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import "strings"

// Locale is a site locale code.
type Locale string

// Supported locales.
const (
	LocaleEN Locale = "en"
	LocaleFR Locale = "fr"

	// FallbackLocale supplies localized values missing in other locales.
	FallbackLocale = LocaleEN
)

// Default URL segments of mega menu detail links.
const (
	DefaultServicesSegment   = "services"
	DefaultIndustriesSegment = "industries"
)

// LocalizedHref prefixes an internal href with the locale. External and
// anchor links are returned unchanged.
func LocalizedHref(locale Locale, href string) string {
	if href == "" {
		return "/" + string(locale)
	}
	if !strings.HasPrefix(href, "/") || strings.HasPrefix(href, "//") {
		return href
	}
	if href == "/" {
		return "/" + string(locale)
	}
	return "/" + string(locale) + href
}

// ServiceHref builds the detail link of a service listed in the mega menu
// opened from basePath.
func (m MegaMenu) ServiceHref(locale Locale, basePath, slug string) string {
	seg := m.ServicesURLPathSegment
	if seg == "" {
		seg = DefaultServicesSegment
	}
	return detailHref(locale, basePath, seg, slug)
}

// IndustryHref builds the detail link of an industry listed in the mega
// menu opened from basePath.
func (m MegaMenu) IndustryHref(locale Locale, basePath, slug string) string {
	seg := m.IndustriesURLPathSegment
	if seg == "" {
		seg = DefaultIndustriesSegment
	}
	return detailHref(locale, basePath, seg, slug)
}

func detailHref(locale Locale, basePath, segment, slug string) string {
	base := strings.TrimSuffix(basePath, "/")
	return "/" + string(locale) + base + "/" + strings.Trim(segment, "/") + "/" + slug
}

// SwitchLocalePath rewrites a localized path to another locale, keeping
// the rest of the path.
func SwitchLocalePath(path string, from, to Locale) string {
	prefix := "/" + string(from)
	switch {
	case path == prefix || path == prefix+"/":
		return "/" + string(to)
	case strings.HasPrefix(path, prefix+"/"):
		return "/" + string(to) + path[len(prefix):]
	default:
		return "/" + string(to)
	}
}
