// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package fixtures embeds the bundled site content.
package fixtures

import (
	_ "embed"
	"strings"

	"github.com/olegiv/aryes-site/internal/docstore"
)

// SiteYAML is the bundled site content in fixture format.
//
//go:embed site.yaml
var SiteYAML string

// Site decodes the bundled site content.
func Site() (*docstore.Fixtures, error) {
	return docstore.LoadFixtures(strings.NewReader(SiteYAML))
}
