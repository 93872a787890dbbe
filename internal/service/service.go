// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service assembles the page view models rendered by the site.
//
// Every assembler reads its global at a fixed depth and then runs the
// relationship resolver over the paths that may still hold bare
// identifiers. The returned view model is nil when the global does not
// exist in the store. Store failures are returned unchanged.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/olegiv/aryes-site/internal/content"
	"github.com/olegiv/aryes-site/internal/docstore"
	"github.com/olegiv/aryes-site/internal/resolver"
	"github.com/olegiv/aryes-site/internal/richtext"
)

// Read depths of the assembled globals.
const (
	NavigationDepth = 3
	MegaMenuDepth   = 3
	SettingsDepth   = 2
	FooterDepth     = 2
	HomeDepth       = 2
	AdvisoryDepth   = 3

	// relationDepth is used for follow-up reads of leaf documents.
	relationDepth = 1
)

// AdvisoryPath is the site path of the advisory page.
const AdvisoryPath = "/advisory"

// base holds what every assembler needs.
type base struct {
	store    docstore.Store
	resolver *resolver.Resolver
	logger   *slog.Logger
}

func newBase(store docstore.Store, logger *slog.Logger) base {
	if logger == nil {
		logger = slog.Default()
	}
	return base{
		store:    store,
		resolver: resolver.New(store, resolver.WithLogger(logger)),
		logger:   logger,
	}
}

// RoundTrips returns the number of follow-up reads issued by the resolver.
func (b *base) RoundTrips() int64 {
	return b.resolver.RoundTrips()
}

// global reads a global. A missing global is not an error and yields nil.
func global[T any](ctx context.Context, store docstore.Store, slug string, locale content.Locale, depth int) (*T, error) {
	doc, err := docstore.Global[T](ctx, store, slug, docstore.Options{Locale: locale, Depth: depth})
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func scope(locale content.Locale) resolver.Scope {
	return resolver.Scope{Locale: locale, Depth: relationDepth}
}

func (b *base) media(ctx context.Context, locale content.Locale, ref content.Ref[content.Media]) (*content.Media, error) {
	return resolver.One(ctx, b.resolver, scope(locale), content.CollectionMedia, ref)
}

// expanded wraps a resolved document. Nil gives the absent relationship.
func expanded[T content.Document](doc *T) content.Ref[T] {
	if doc == nil {
		return content.Ref[T]{}
	}
	return content.Expanded(*doc)
}

// serviceRelations resolves the category and featured image of a service,
// so service views have the same shape whatever depth the store returned.
func (b *base) serviceRelations(locale content.Locale) resolver.Path[content.Service] {
	return func(ctx context.Context, svc *content.Service) error {
		cat, err := resolver.One(ctx, b.resolver, scope(locale), content.CollectionServiceCategories, svc.Category)
		if err != nil {
			return err
		}
		img, err := b.media(ctx, locale, svc.FeaturedImage)
		if err != nil {
			return err
		}
		svc.Category = expanded(cat)
		svc.FeaturedImage = expanded(img)
		return nil
	}
}

// industryRelations resolves the featured image of an industry.
func (b *base) industryRelations(locale content.Locale) resolver.Path[content.Industry] {
	return func(ctx context.Context, ind *content.Industry) error {
		img, err := b.media(ctx, locale, ind.FeaturedImage)
		if err != nil {
			return err
		}
		ind.FeaturedImage = expanded(img)
		return nil
	}
}

// logo resolves the site logo. An image logo without any resolvable image
// degrades to a text logo carrying the company name.
func (b *base) logo(ctx context.Context, locale content.Locale, settings *content.SiteSettings) (*LogoView, error) {
	if settings == nil || settings.Logo == nil {
		return nil, nil
	}
	l := settings.Logo

	if l.Type == content.LogoImage && l.ImageLogo != nil {
		light, err := b.media(ctx, locale, l.ImageLogo.LogoLight)
		if err != nil {
			return nil, err
		}
		dark, err := b.media(ctx, locale, l.ImageLogo.LogoDark)
		if err != nil {
			return nil, err
		}
		if light != nil || dark != nil {
			return &LogoView{Type: content.LogoImage, Light: light, Dark: dark, Alt: l.ImageLogo.Alt}, nil
		}
		b.logger.Warn("image logo has no resolvable image, using text logo", "locale", locale)
	}

	v := &LogoView{Type: content.LogoText}
	if l.TextLogo != nil {
		v.Text, v.Accent = l.TextLogo.Text, l.TextLogo.Accent
	}
	if v.Text == "" && settings.Company != nil {
		v.Text = settings.Company.Name
	}
	return v, nil
}

// html renders rich text. Values that were already rendered keep their HTML.
func html(rt content.RichText) (string, error) {
	if len(rt.State) == 0 {
		return rt.HTML, nil
	}
	return richtext.HTML(rt.State)
}

func localizeLinks(locale content.Locale, links []content.Link) []content.Link {
	out := make([]content.Link, len(links))
	for i, l := range links {
		out[i] = content.Link{Label: l.Label, Href: content.LocalizedHref(locale, l.Href)}
	}
	return out
}
