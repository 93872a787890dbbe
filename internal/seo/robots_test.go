// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
	"testing"
)

func TestRobotsBuilderBuildDefault(t *testing.T) {
	content := NewRobotsBuilder(RobotsConfig{SiteURL: "https://aryes.ch/"}).Build()

	for _, want := range []string{
		"User-agent: *",
		"Disallow: /api/",
		"Disallow: /health",
		"Allow: /",
		"Sitemap: https://aryes.ch/sitemap.xml",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("Build() missing %q", want)
		}
	}
}

func TestRobotsBuilderBuildDisallowAll(t *testing.T) {
	content := NewRobotsBuilder(RobotsConfig{SiteURL: "https://aryes.ch", DisallowAll: true}).Build()

	if !strings.Contains(content, "Disallow: /\n") {
		t.Error("Build() should contain 'Disallow: /'")
	}
	if strings.Contains(content, "Sitemap:") {
		t.Error("Build() should not reference the sitemap when disallowing all")
	}
}

func TestRobotsBuilderCustomPaths(t *testing.T) {
	content := NewRobotsBuilder(RobotsConfig{DisallowPaths: []string{"/drafts"}}).Build()

	if !strings.Contains(content, "Disallow: /drafts") {
		t.Error("Build() should contain custom disallow path")
	}
	if strings.Contains(content, "Sitemap:") {
		t.Error("Build() without site URL should not reference the sitemap")
	}
}
