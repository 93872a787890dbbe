// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds the sitemap and robots.txt of the localized site.
package seo

import (
	"encoding/xml"
	"strings"
	"time"

	"github.com/olegiv/aryes-site/internal/content"
)

// Sitemap namespaces.
const (
	XMLNamespace   = "http://www.sitemaps.org/schemas/sitemap/0.9"
	XHTMLNamespace = "http://www.w3.org/1999/xhtml"
)

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Valid change frequency values.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// Alternate links a URL to its translation in another locale.
type Alternate struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string      `xml:"loc"`
	LastMod    string      `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq  `xml:"changefreq,omitempty"`
	Priority   string      `xml:"priority,omitempty"`
	Alternates []Alternate `xml:"xhtml:link"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	XHTMLNS string       `xml:"xmlns:xhtml,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapPage is a locale independent page path such as "/advisory".
type SitemapPage struct {
	Path       string     `json:"path"`
	ChangeFreq ChangeFreq `json:"changefreq,omitempty"`
	Priority   string     `json:"priority,omitempty"`
	UpdatedAt  time.Time  `json:"updatedAt,omitzero"`
}

// SitemapBuilder expands pages into one URL per locale, each listing the
// other translations as alternates.
type SitemapBuilder struct {
	siteURL string
	locales []content.Locale
	seen    map[string]bool
	urls    []SitemapURL
}

// NewSitemapBuilder creates a new sitemap builder. The first locale is
// used as x-default.
func NewSitemapBuilder(siteURL string, locales []content.Locale) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: strings.TrimSuffix(siteURL, "/"),
		locales: locales,
		seen:    make(map[string]bool),
		urls:    make([]SitemapURL, 0),
	}
}

// AddPage adds page in every locale. A path that was already added is
// ignored.
func (b *SitemapBuilder) AddPage(page SitemapPage) {
	path := "/" + strings.Trim(page.Path, "/")
	if b.seen[path] {
		return
	}
	b.seen[path] = true

	alternates := make([]Alternate, 0, len(b.locales)+1)
	for _, l := range b.locales {
		alternates = append(alternates, Alternate{Rel: "alternate", Hreflang: string(l), Href: b.loc(l, path)})
	}
	if len(b.locales) > 0 {
		alternates = append(alternates, Alternate{Rel: "alternate", Hreflang: "x-default", Href: b.loc(b.locales[0], path)})
	}

	for _, l := range b.locales {
		url := SitemapURL{
			Loc:        b.loc(l, path),
			ChangeFreq: page.ChangeFreq,
			Priority:   page.Priority,
			Alternates: alternates,
		}
		if !page.UpdatedAt.IsZero() {
			url.LastMod = page.UpdatedAt.UTC().Format(time.RFC3339)
		}
		b.urls = append(b.urls, url)
	}
}

// AddPages adds multiple pages to the sitemap.
func (b *SitemapBuilder) AddPages(pages []SitemapPage) {
	for _, p := range pages {
		b.AddPage(p)
	}
}

func (b *SitemapBuilder) loc(locale content.Locale, path string) string {
	return b.siteURL + content.LocalizedHref(locale, path)
}

// URLs returns the URLs added so far.
func (b *SitemapBuilder) URLs() []SitemapURL {
	return b.urls
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS:   XMLNamespace,
		XHTMLNS: XHTMLNamespace,
		URLs:    b.urls,
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}

// GenerateSitemap is a convenience function to generate a sitemap from pages.
func GenerateSitemap(siteURL string, locales []content.Locale, pages []SitemapPage) ([]byte, error) {
	builder := NewSitemapBuilder(siteURL, locales)
	builder.AddPages(pages)
	return builder.Build()
}
