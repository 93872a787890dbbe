// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package docstore

import (
	"slices"

	"github.com/olegiv/aryes-site/internal/content"
)

// Relation declares a relationship field. Path is dot separated; a "*"
// segment steps into every element of an array. The value at Path may be a
// single identifier or an array of identifiers.
type Relation struct {
	Path       string
	Collection string
}

// Type describes the fields of a collection or global that need engine
// treatment.
type Type struct {
	Localized []string
	Relations []Relation
}

// Schema maps collections and globals to their types.
type Schema struct {
	Locales     []content.Locale
	Collections map[string]Type
	Globals     map[string]Type
}

// Collection returns the type of a collection. Unknown collections have no
// localized or relationship fields.
func (s *Schema) Collection(slug string) Type {
	return s.Collections[slug]
}

// Global returns the type of a global.
func (s *Schema) Global(slug string) Type {
	return s.Globals[slug]
}

// HasLocale reports whether code is a configured locale.
func (s *Schema) HasLocale(code string) bool {
	return slices.Contains(s.Locales, content.Locale(code))
}

// DefaultSchema describes the site collections and globals.
func DefaultSchema() *Schema {
	return &Schema{
		Locales: []content.Locale{content.LocaleEN, content.LocaleFR},
		Collections: map[string]Type{
			content.CollectionMedia: {
				Localized: []string{"alt"},
			},
			content.CollectionServiceCategories: {
				Localized: []string{"name", "description"},
			},
			content.CollectionServices: {
				Localized: []string{"title", "shortDescription"},
				Relations: []Relation{
					{Path: "category", Collection: content.CollectionServiceCategories},
					{Path: "featuredImage", Collection: content.CollectionMedia},
				},
			},
			content.CollectionIndustries: {
				Localized: []string{"name"},
				Relations: []Relation{
					{Path: "featuredImage", Collection: content.CollectionMedia},
				},
			},
			content.CollectionTeamMembers: {
				Localized: []string{"name", "role", "bio"},
				Relations: []Relation{
					{Path: "image", Collection: content.CollectionMedia},
				},
			},
			content.CollectionMegaMenus: {
				Localized: []string{
					"overviewLink.label", "overviewLink.sectionLabel",
					"servicesColumnTitle", "industriesColumnTitle",
				},
				Relations: []Relation{
					{Path: "serviceCategories.*.category", Collection: content.CollectionServiceCategories},
					{Path: "serviceCategories.*.services", Collection: content.CollectionServices},
					{Path: "industries", Collection: content.CollectionIndustries},
				},
			},
		},
		Globals: map[string]Type{
			content.GlobalNavigation: {
				Localized: []string{"items.*.label"},
				Relations: []Relation{
					{Path: "items.*.megaMenu", Collection: content.CollectionMegaMenus},
				},
			},
			content.GlobalSiteSettings: {
				Localized: []string{
					"company.name", "company.legalName",
					"company.address.street", "company.address.city",
					"company.address.country", "company.address.display",
					"logo.imageLogo.alt",
				},
				Relations: []Relation{
					{Path: "logo.imageLogo.logoLight", Collection: content.CollectionMedia},
					{Path: "logo.imageLogo.logoDark", Collection: content.CollectionMedia},
				},
			},
			content.GlobalFooter: {
				Localized: []string{
					"companyColumnTitle", "companyLinks.*.label",
					"legalColumnTitle", "legalLinks.*.label",
					"languageColumnTitle", "copyright",
				},
			},
			content.GlobalHomePage: {
				Localized: []string{
					"hero.title", "hero.titleHighlight", "hero.subtitle",
					"hero.ctaButtons.*.label", "hero.scrollLabel",
					"whatWeDo.cards.*.badge", "whatWeDo.cards.*.title",
					"whatWeDo.cards.*.description", "whatWeDo.learnMoreLabel",
					"approach.label", "approach.title", "approach.description", "approach.ctaLabel",
					"leadership.label", "leadership.title", "leadership.description",
					"contact.title", "contact.description", "contact.location", "contact.ctaLabel",
				},
				Relations: []Relation{
					{Path: "hero.videos.*.video", Collection: content.CollectionMedia},
					{Path: "whatWeDo.cards.*.image", Collection: content.CollectionMedia},
					{Path: "approach.image", Collection: content.CollectionMedia},
					{Path: "leadership.teamMembers", Collection: content.CollectionTeamMembers},
				},
			},
			content.GlobalAdvisoryPage: {
				Localized: []string{
					"pageHeader.category", "pageHeader.title", "pageHeader.subtitle",
					"introSection.title", "introSection.description",
					"practiceAreas.*.description",
					"perspectiveSection.label", "perspectiveSection.title", "perspectiveSection.quote",
					"perspectiveSection.items.*.title", "perspectiveSection.items.*.description",
					"industriesSection.title", "industriesSection.description",
					"ctaSection.title", "ctaSection.subtitle", "ctaSection.buttonText",
				},
				Relations: []Relation{
					{Path: "pageHeader.image", Collection: content.CollectionMedia},
					{Path: "practiceAreas.*.category", Collection: content.CollectionServiceCategories},
					{Path: "practiceAreas.*.services", Collection: content.CollectionServices},
					{Path: "practiceAreas.*.image", Collection: content.CollectionMedia},
					{Path: "industriesSection.industries", Collection: content.CollectionIndustries},
				},
			},
		},
	}
}
