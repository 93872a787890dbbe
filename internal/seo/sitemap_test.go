// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/olegiv/aryes-site/internal/content"
)

var testLocales = []content.Locale{content.LocaleEN, content.LocaleFR}

func TestSitemapBuilderAddPage(t *testing.T) {
	builder := NewSitemapBuilder("https://aryes.ch/", testLocales)
	builder.AddPage(SitemapPage{Path: "/advisory", ChangeFreq: ChangeFreqWeekly, Priority: "0.9"})

	urls := builder.URLs()
	if len(urls) != 2 {
		t.Fatalf("urls length = %d, want 2", len(urls))
	}
	if urls[0].Loc != "https://aryes.ch/en/advisory" {
		t.Errorf("Loc[0] = %q", urls[0].Loc)
	}
	if urls[1].Loc != "https://aryes.ch/fr/advisory" {
		t.Errorf("Loc[1] = %q", urls[1].Loc)
	}

	alts := urls[1].Alternates
	if len(alts) != 3 {
		t.Fatalf("alternates = %d, want 3", len(alts))
	}
	want := []Alternate{
		{Rel: "alternate", Hreflang: "en", Href: "https://aryes.ch/en/advisory"},
		{Rel: "alternate", Hreflang: "fr", Href: "https://aryes.ch/fr/advisory"},
		{Rel: "alternate", Hreflang: "x-default", Href: "https://aryes.ch/en/advisory"},
	}
	for i := range want {
		if alts[i] != want[i] {
			t.Errorf("alternate[%d] = %+v, want %+v", i, alts[i], want[i])
		}
	}
}

func TestSitemapBuilderHomePath(t *testing.T) {
	builder := NewSitemapBuilder("https://aryes.ch", testLocales)
	builder.AddPage(SitemapPage{Path: "/"})
	builder.AddPage(SitemapPage{Path: ""})

	urls := builder.URLs()
	if len(urls) != 2 {
		t.Fatalf("urls length = %d, want 2 (duplicate path ignored)", len(urls))
	}
	if urls[0].Loc != "https://aryes.ch/en" {
		t.Errorf("Loc = %q, want https://aryes.ch/en", urls[0].Loc)
	}
}

func TestSitemapBuilderLastMod(t *testing.T) {
	builder := NewSitemapBuilder("https://aryes.ch", testLocales[:1])
	builder.AddPage(SitemapPage{Path: "/a", UpdatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)})
	builder.AddPage(SitemapPage{Path: "/b"})

	urls := builder.URLs()
	if urls[0].LastMod != "2026-03-01T09:00:00Z" {
		t.Errorf("LastMod = %q", urls[0].LastMod)
	}
	if urls[1].LastMod != "" {
		t.Errorf("LastMod for zero time = %q, want empty", urls[1].LastMod)
	}
}

func TestSitemapBuilderBuild(t *testing.T) {
	data, err := GenerateSitemap("https://aryes.ch", testLocales, []SitemapPage{
		{Path: "/", ChangeFreq: ChangeFreqDaily, Priority: "1.0"},
		{Path: "/advisory/services/a"},
	})
	if err != nil {
		t.Fatalf("GenerateSitemap: %v", err)
	}

	out := string(data)
	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`,
		`xmlns:xhtml="http://www.w3.org/1999/xhtml"`,
		`<loc>https://aryes.ch/fr/advisory/services/a</loc>`,
		`<xhtml:link rel="alternate" hreflang="fr" href="https://aryes.ch/fr"></xhtml:link>`,
		`<priority>1.0</priority>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("sitemap missing %s", want)
		}
	}

	var parsed struct {
		URLs []struct {
			Loc string `xml:"loc"`
		} `xml:"url"`
	}
	if err := xml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("sitemap is not valid XML: %v", err)
	}
	if len(parsed.URLs) != 4 {
		t.Errorf("parsed %d urls, want 4", len(parsed.URLs))
	}
}

func TestSitemapBuilderBuildEmpty(t *testing.T) {
	data, err := NewSitemapBuilder("https://aryes.ch", testLocales).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if strings.Contains(string(data), "<url>") {
		t.Error("empty sitemap should not contain url entries")
	}
}
