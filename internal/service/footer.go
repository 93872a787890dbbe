// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/aryes-site/internal/content"
	"github.com/olegiv/aryes-site/internal/docstore"
	"github.com/olegiv/aryes-site/internal/i18n"
)

// FooterService assembles the site footer.
type FooterService struct {
	base
	now func() time.Time
}

// NewFooterService creates a new FooterService.
func NewFooterService(store docstore.Store, logger *slog.Logger) *FooterService {
	return &FooterService{base: newBase(store, logger), now: time.Now}
}

// Footer returns the footer view model, or nil when the footer global is
// not configured. Missing site settings leave the company placeholders of
// the copyright empty.
func (s *FooterService) Footer(ctx context.Context, locale content.Locale) (*FooterView, error) {
	var (
		footer   *content.Footer
		settings *content.SiteSettings
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		footer, err = global[content.Footer](gctx, s.store, content.GlobalFooter, locale, FooterDepth)
		return err
	})
	g.Go(func() (err error) {
		settings, err = global[content.SiteSettings](gctx, s.store, content.GlobalSiteSettings, locale, SettingsDepth)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if footer == nil {
		s.logger.Debug("footer not configured", "locale", locale)
		return nil, nil
	}

	logo, err := s.logo(ctx, locale, settings)
	if err != nil {
		return nil, err
	}

	var company *content.Company
	if settings != nil {
		company = settings.Company
	}

	social := footer.SocialLinks
	if social == nil {
		social = []content.SocialLink{}
	}

	return &FooterView{
		Locale:              locale,
		Logo:                logo,
		Company:             company,
		CompanyColumnTitle:  footer.CompanyColumnTitle,
		CompanyLinks:        localizeLinks(locale, footer.CompanyLinks),
		LegalColumnTitle:    footer.LegalColumnTitle,
		LegalLinks:          localizeLinks(locale, footer.LegalLinks),
		SocialLinks:         social,
		LanguageColumnTitle: footer.LanguageColumnTitle,
		Languages:           languageLinks(locale),
		Copyright:           Copyright(footer.Copyright, company, s.now().Year()),
	}, nil
}

// Copyright interpolates {year}, {company} and {location} into template.
// An empty template selects content.DefaultCopyright. The company is its
// legal name when set, otherwise its name.
func Copyright(template string, company *content.Company, year int) string {
	if template == "" {
		template = content.DefaultCopyright
	}

	var name, location string
	if company != nil {
		name = company.LegalName
		if name == "" {
			name = company.Name
		}
		if company.Address != nil {
			location = company.Address.Display
		}
	}

	return strings.NewReplacer(
		"{year}", strconv.Itoa(year),
		"{company}", name,
		"{location}", location,
	).Replace(template)
}

func languageLinks(current content.Locale) []LanguageLink {
	locales := i18n.Locales()
	links := make([]LanguageLink, len(locales))
	for i, l := range locales {
		links[i] = LanguageLink{
			Locale: l,
			Name:   i18n.LanguageName(l),
			Href:   content.LocalizedHref(l, "/"),
			Active: l == current,
		}
	}
	return links
}
