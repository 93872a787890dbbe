// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteLocale is the localized home page.
	RouteLocale = "/{locale}"
	// RouteAdvisory is the advisory page, relative to RouteLocale.
	RouteAdvisory = "/advisory"

	// RouteAPILocale prefixes the view model endpoints.
	RouteAPILocale = "/api/{locale}"
	RouteHeader    = "/header"
	RouteFooter    = "/footer"
	RouteHome      = "/home"

	RouteSitemap = "/sitemap.xml"
	RouteRobots  = "/robots.txt"

	RouteHealth      = "/health"
	RouteHealthLive  = "/health/live"
	RouteHealthReady = "/health/ready"
)

// i18n keys of the error messages.
const (
	msgMissingNavigation = "missing.navigation"
	msgMissingFooter     = "missing.footer"
	msgMissingHome       = "missing.home-page"
	msgMissingAdvisory   = "missing.advisory-page"
	msgUnavailable       = "error.unavailable"
)
