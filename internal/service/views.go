// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"github.com/olegiv/aryes-site/internal/content"
)

// View models hold only expanded documents. A relationship that could not
// be resolved is absent (nil pointer or dropped slice element), never a
// bare identifier.

// CategoryView is an expanded service category.
type CategoryView struct {
	ID          content.ID `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
}

// ServiceView is an expanded service with its detail link.
type ServiceView struct {
	ID               content.ID     `json:"id"`
	Title            string         `json:"title"`
	Slug             string         `json:"slug"`
	Href             string         `json:"href"`
	ShortDescription string         `json:"shortDescription,omitempty"`
	Category         *CategoryView  `json:"category,omitempty"`
	FeaturedImage    *content.Media `json:"featuredImage,omitempty"`
}

// IndustryView is an expanded industry with its detail link.
type IndustryView struct {
	ID            content.ID     `json:"id"`
	Name          string         `json:"name"`
	Slug          string         `json:"slug"`
	Href          string         `json:"href"`
	FeaturedImage *content.Media `json:"featuredImage,omitempty"`
}

// MegaMenuCategoryView is one services column of a mega menu.
type MegaMenuCategoryView struct {
	Category CategoryView  `json:"category"`
	Services []ServiceView `json:"services"`
	// MobileHeading is the collapsed heading of the column on small screens,
	// for example "Services | TECHNOLOGY".
	MobileHeading string `json:"mobileHeading"`
}

// MegaMenuView is a fully resolved mega menu.
type MegaMenuView struct {
	ID                    content.ID             `json:"id"`
	Name                  string                 `json:"name"`
	OverviewLink          *content.OverviewLink  `json:"overviewLink,omitempty"`
	ServicesColumnTitle   string                 `json:"servicesColumnTitle,omitempty"`
	ServiceCategories     []MegaMenuCategoryView `json:"serviceCategories"`
	IndustriesColumnTitle string                 `json:"industriesColumnTitle,omitempty"`
	Industries            []IndustryView         `json:"industries"`
}

// NavItemView is a header entry.
type NavItemView struct {
	Key      string        `json:"key"`
	Label    string        `json:"label"`
	Href     string        `json:"href"`
	MegaMenu *MegaMenuView `json:"megaMenu,omitempty"`
}

// LogoView is the resolved site logo.
type LogoView struct {
	Type   string         `json:"type"`
	Text   string         `json:"text,omitempty"`
	Accent string         `json:"accent,omitempty"`
	Light  *content.Media `json:"light,omitempty"`
	Dark   *content.Media `json:"dark,omitempty"`
	Alt    string         `json:"alt,omitempty"`
}

// HeaderView is the view model of the site header.
type HeaderView struct {
	Locale        content.Locale `json:"locale"`
	HomeHref      string         `json:"homeHref"`
	Logo          *LogoView      `json:"logo,omitempty"`
	Items         []NavItemView  `json:"items"`
	ServicesLabel string         `json:"servicesLabel"`
}

// LanguageLink switches the site locale.
type LanguageLink struct {
	Locale content.Locale `json:"locale"`
	Name   string         `json:"name"`
	Href   string         `json:"href"`
	Active bool           `json:"active"`
}

// FooterView is the view model of the site footer.
type FooterView struct {
	Locale              content.Locale       `json:"locale"`
	Logo                *LogoView            `json:"logo,omitempty"`
	Company             *content.Company     `json:"company,omitempty"`
	CompanyColumnTitle  string               `json:"companyColumnTitle,omitempty"`
	CompanyLinks        []content.Link       `json:"companyLinks"`
	LegalColumnTitle    string               `json:"legalColumnTitle,omitempty"`
	LegalLinks          []content.Link       `json:"legalLinks"`
	SocialLinks         []content.SocialLink `json:"socialLinks"`
	LanguageColumnTitle string               `json:"languageColumnTitle,omitempty"`
	Languages           []LanguageLink       `json:"languages"`
	Copyright           string               `json:"copyright"`
}

// LinkLanguagesTo points the language links at path, the localized path of
// the current page, so switching locale keeps the page.
func (v *FooterView) LinkLanguagesTo(path string) {
	for i := range v.Languages {
		v.Languages[i].Href = content.SwitchLocalePath(path, v.Locale, v.Languages[i].Locale)
	}
}

// HeroView is the home page hero.
type HeroView struct {
	Title          string              `json:"title,omitempty"`
	TitleHighlight string              `json:"titleHighlight,omitempty"`
	Subtitle       string              `json:"subtitle,omitempty"`
	Videos         []content.Media     `json:"videos"`
	CTAButtons     []content.CTAButton `json:"ctaButtons"`
	ScrollLabel    string              `json:"scrollLabel,omitempty"`
}

// CardView is a "what we do" card.
type CardView struct {
	Badge       string         `json:"badge,omitempty"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Href        string         `json:"href,omitempty"`
	Image       *content.Media `json:"image,omitempty"`
}

// WhatWeDoView is the cards section of the home page.
type WhatWeDoView struct {
	Cards          []CardView `json:"cards"`
	LearnMoreLabel string     `json:"learnMoreLabel,omitempty"`
}

// ApproachView is the approach section of the home page.
type ApproachView struct {
	Label       string         `json:"label,omitempty"`
	Title       string         `json:"title,omitempty"`
	Description string         `json:"description,omitempty"`
	CTALabel    string         `json:"ctaLabel,omitempty"`
	CTAHref     string         `json:"ctaHref,omitempty"`
	Image       *content.Media `json:"image,omitempty"`
}

// TeamMemberView is a resolved leadership profile.
type TeamMemberView struct {
	ID    content.ID     `json:"id"`
	Name  string         `json:"name"`
	Slug  string         `json:"slug"`
	Role  string         `json:"role"`
	Bio   string         `json:"bio,omitempty"`
	Href  string         `json:"href"`
	Image *content.Media `json:"image,omitempty"`
}

// LeadershipView is the team section of the home page.
type LeadershipView struct {
	Label       string           `json:"label,omitempty"`
	Title       string           `json:"title,omitempty"`
	Description string           `json:"description,omitempty"`
	TeamMembers []TeamMemberView `json:"teamMembers"`
}

// ContactView is the contact section of the home page.
type ContactView struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Email       string `json:"email,omitempty"`
	Location    string `json:"location,omitempty"`
	CTALabel    string `json:"ctaLabel,omitempty"`
	CTAHref     string `json:"ctaHref,omitempty"`
}

// HomeView is the view model of the home page.
type HomeView struct {
	Locale     content.Locale  `json:"locale"`
	Hero       *HeroView       `json:"hero,omitempty"`
	WhatWeDo   *WhatWeDoView   `json:"whatWeDo,omitempty"`
	Approach   *ApproachView   `json:"approach,omitempty"`
	Leadership *LeadershipView `json:"leadership,omitempty"`
	Contact    *ContactView    `json:"contact,omitempty"`
}

// PageHeaderView is the header block of an inner page.
type PageHeaderView struct {
	Category     string         `json:"category,omitempty"`
	Title        string         `json:"title,omitempty"`
	Subtitle     string         `json:"subtitle,omitempty"`
	Image        *content.Media `json:"image,omitempty"`
	WithBlueLine bool           `json:"withBlueLine"`
	Size         string         `json:"size"`
}

// IntroView opens the advisory page.
type IntroView struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// PracticeAreaView is a normalized practice area: the category is always
// present and Services is never nil.
type PracticeAreaView struct {
	ID             string         `json:"id,omitempty"`
	PracticeNumber string         `json:"practiceNumber,omitempty"`
	Category       CategoryView   `json:"category"`
	Description    string         `json:"description,omitempty"`
	Services       []ServiceView  `json:"services"`
	Image          *content.Media `json:"image,omitempty"`
}

// IndustriesSectionView lists the industries served.
type IndustriesSectionView struct {
	Title       string         `json:"title,omitempty"`
	Description string         `json:"description,omitempty"`
	Industries  []IndustryView `json:"industries"`
}

// CTAView is the closing call to action.
type CTAView struct {
	Title           string `json:"title,omitempty"`
	Subtitle        string `json:"subtitle,omitempty"`
	ButtonText      string `json:"buttonText,omitempty"`
	ButtonLink      string `json:"buttonLink,omitempty"`
	BackgroundColor string `json:"backgroundColor"`
}

// AdvisoryView is the view model of the advisory page.
type AdvisoryView struct {
	Locale        content.Locale              `json:"locale"`
	PageHeader    *PageHeaderView             `json:"pageHeader,omitempty"`
	Intro         *IntroView                  `json:"introSection,omitempty"`
	PracticeAreas []PracticeAreaView          `json:"practiceAreas"`
	Perspective   *content.PerspectiveSection `json:"perspectiveSection,omitempty"`
	Industries    *IndustriesSectionView      `json:"industriesSection,omitempty"`
	CTA           *CTAView                    `json:"ctaSection,omitempty"`
}

func categoryView(c content.ServiceCategory) CategoryView {
	return CategoryView{ID: c.ID, Name: c.Name, Slug: c.Slug, Description: c.Description}
}

// serviceView converts a service whose relationships went through
// serviceRelations.
func serviceView(s content.Service, href string) ServiceView {
	v := ServiceView{
		ID:               s.ID,
		Title:            s.Title,
		Slug:             s.Slug,
		Href:             href,
		ShortDescription: s.ShortDescription,
		FeaturedImage:    s.FeaturedImage.Doc(),
	}
	if c := s.Category.Doc(); c != nil {
		cv := categoryView(*c)
		v.Category = &cv
	}
	return v
}

func industryView(i content.Industry, href string) IndustryView {
	return IndustryView{
		ID:            i.ID,
		Name:          i.Name,
		Slug:          i.Slug,
		Href:          href,
		FeaturedImage: i.FeaturedImage.Doc(),
	}
}
