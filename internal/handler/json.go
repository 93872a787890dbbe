// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/olegiv/aryes-site/internal/content"
	"github.com/olegiv/aryes-site/internal/i18n"
	"github.com/olegiv/aryes-site/internal/middleware"
)

// writeJSON writes data as a JSON response.
func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeJSONError writes a JSON error response.
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	middleware.WriteAPIError(w, statusCode, message)
}

// writeNotConfigured answers a view model that has no content in the CMS.
func writeNotConfigured(w http.ResponseWriter, locale content.Locale, key string) {
	writeJSONError(w, http.StatusNotFound, i18n.T(string(locale), key))
}

// writeStoreError logs a failed store read and answers 502. A request that
// ran out of time is left to the timeout middleware.
func writeStoreError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, locale content.Locale, what string, err error) {
	if r.Context().Err() != nil {
		logger.WarnContext(r.Context(), "request cancelled while reading content", "view", what, "error", err)
		return
	}
	logger.ErrorContext(r.Context(), "failed to assemble view", "view", what, "error", err)
	writeJSONError(w, http.StatusBadGateway, i18n.T(string(locale), msgUnavailable))
}
