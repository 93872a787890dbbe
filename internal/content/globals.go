// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

// Link is a labelled href.
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// NavigationItem is a top level header entry. It is either a plain link or
// opens exactly one mega menu.
type NavigationItem struct {
	ID       string        `json:"id,omitempty"`
	Label    string        `json:"label"`
	Href     string        `json:"href"`
	MegaMenu Ref[MegaMenu] `json:"megaMenu"`
}

// Key returns the stable key of the item, its id or else its href.
func (i NavigationItem) Key() string {
	if i.ID != "" {
		return i.ID
	}
	return i.Href
}

// Navigation is the header global.
type Navigation struct {
	Items []NavigationItem `json:"items"`
}

// Social platforms.
const (
	PlatformLinkedIn = "linkedin"
	PlatformTwitter  = "twitter"
	PlatformOther    = "other"
)

// SocialLink points to a company profile.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// DefaultCopyright is used when the footer leaves the copyright empty.
const DefaultCopyright = "© {year} {company} · {location}"

// Footer is the footer global.
type Footer struct {
	CompanyColumnTitle  string       `json:"companyColumnTitle,omitempty"`
	CompanyLinks        []Link       `json:"companyLinks"`
	LegalColumnTitle    string       `json:"legalColumnTitle,omitempty"`
	LegalLinks          []Link       `json:"legalLinks"`
	SocialLinks         []SocialLink `json:"socialLinks"`
	LanguageColumnTitle string       `json:"languageColumnTitle,omitempty"`
	Copyright           string       `json:"copyright,omitempty"`
}

// Address is the postal address of the company.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
	Display string `json:"display,omitempty"`
}

// Company holds the company contact details.
type Company struct {
	Name      string   `json:"name,omitempty"`
	LegalName string   `json:"legalName,omitempty"`
	Email     string   `json:"email,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Address   *Address `json:"address,omitempty"`
}

// Logo types.
const (
	LogoText  = "text"
	LogoImage = "image"
)

// TextLogo is a wordmark with an accent suffix.
type TextLogo struct {
	Text   string `json:"text,omitempty"`
	Accent string `json:"accent,omitempty"`
}

// ImageLogo carries light and dark logo variants.
type ImageLogo struct {
	LogoLight Ref[Media] `json:"logoLight"`
	LogoDark  Ref[Media] `json:"logoDark"`
	Alt       string     `json:"alt,omitempty"`
}

// Logo is either text or image based.
type Logo struct {
	Type      string     `json:"type,omitempty"`
	TextLogo  *TextLogo  `json:"textLogo,omitempty"`
	ImageLogo *ImageLogo `json:"imageLogo,omitempty"`
}

// SiteSettings is the site-wide settings global.
type SiteSettings struct {
	Company *Company `json:"company,omitempty"`
	Logo    *Logo    `json:"logo,omitempty"`
}

// CTAButton styles.
const (
	ButtonPrimary   = "primary"
	ButtonSecondary = "secondary"
)

// CTAButton is a hero call to action.
type CTAButton struct {
	Label string `json:"label"`
	Href  string `json:"href"`
	Style string `json:"style,omitempty"`
}

// HeroVideo is one rotating hero video.
type HeroVideo struct {
	Video Ref[Media] `json:"video"`
}

// Hero is the home page hero section.
type Hero struct {
	Title          string      `json:"title,omitempty"`
	TitleHighlight string      `json:"titleHighlight,omitempty"`
	Subtitle       RichText    `json:"subtitle,omitzero"`
	Videos         []HeroVideo `json:"videos"`
	CTAButtons     []CTAButton `json:"ctaButtons"`
	ScrollLabel    string      `json:"scrollLabel,omitempty"`
}

// WhatWeDoCard is a card of the "what we do" section.
type WhatWeDoCard struct {
	Badge       string     `json:"badge,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Href        string     `json:"href,omitempty"`
	Image       Ref[Media] `json:"image"`
}

// WhatWeDo is the cards section of the home page.
type WhatWeDo struct {
	Cards          []WhatWeDoCard `json:"cards"`
	LearnMoreLabel string         `json:"learnMoreLabel,omitempty"`
}

// Approach is the home page approach section.
type Approach struct {
	Label       string     `json:"label,omitempty"`
	Title       RichText   `json:"title,omitzero"`
	Description string     `json:"description,omitempty"`
	CTALabel    string     `json:"ctaLabel,omitempty"`
	CTAHref     string     `json:"ctaHref,omitempty"`
	Image       Ref[Media] `json:"image"`
}

// Leadership is the home page team section.
type Leadership struct {
	Label       string            `json:"label,omitempty"`
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	TeamMembers []Ref[TeamMember] `json:"teamMembers"`
}

// Contact is the home page contact section.
type Contact struct {
	Title       RichText `json:"title,omitzero"`
	Description string   `json:"description,omitempty"`
	Email       string   `json:"email,omitempty"`
	Location    string   `json:"location,omitempty"`
	CTALabel    string   `json:"ctaLabel,omitempty"`
	CTAHref     string   `json:"ctaHref,omitempty"`
}

// HomePage is the home page global.
type HomePage struct {
	Hero       *Hero       `json:"hero,omitempty"`
	WhatWeDo   *WhatWeDo   `json:"whatWeDo,omitempty"`
	Approach   *Approach   `json:"approach,omitempty"`
	Leadership *Leadership `json:"leadership,omitempty"`
	Contact    *Contact    `json:"contact,omitempty"`
}

// Page header sizes.
const (
	HeaderStandard = "standard"
	HeaderLarge    = "large"
)

// PageHeader is the shared header block of inner pages.
type PageHeader struct {
	Category     string     `json:"category,omitempty"`
	Title        string     `json:"title,omitempty"`
	Subtitle     string     `json:"subtitle,omitempty"`
	Image        Ref[Media] `json:"image"`
	WithBlueLine bool       `json:"withBlueLine,omitempty"`
	Size         string     `json:"size,omitempty"`
}

// IntroSection opens the advisory page.
type IntroSection struct {
	Title       RichText `json:"title,omitzero"`
	Description string   `json:"description,omitempty"`
}

// PracticeArea is one numbered practice of the advisory page.
type PracticeArea struct {
	ID             string               `json:"id,omitempty"`
	PracticeNumber string               `json:"practiceNumber,omitempty"`
	Category       Ref[ServiceCategory] `json:"category"`
	Description    string               `json:"description,omitempty"`
	Services       []Ref[Service]       `json:"services"`
	Image          Ref[Media]           `json:"image"`
}

// PerspectiveItem is one point of the perspective section.
type PerspectiveItem struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// PerspectiveSection is the quote section of the advisory page.
type PerspectiveSection struct {
	Label string            `json:"label,omitempty"`
	Title string            `json:"title,omitempty"`
	Quote string            `json:"quote,omitempty"`
	Items []PerspectiveItem `json:"items"`
}

// IndustriesSection lists the industries served.
type IndustriesSection struct {
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	Industries  []Ref[Industry] `json:"industries"`
}

// CTA section backgrounds.
const (
	BackgroundStone = "stone"
	BackgroundWhite = "white"
	BackgroundDark  = "dark"
)

// CTASection is the closing call to action block.
type CTASection struct {
	Title           RichText `json:"title,omitzero"`
	Subtitle        string   `json:"subtitle,omitempty"`
	ButtonText      string   `json:"buttonText,omitempty"`
	ButtonLink      string   `json:"buttonLink,omitempty"`
	BackgroundColor string   `json:"backgroundColor,omitempty"`
}

// AdvisoryPage is the advisory page global.
type AdvisoryPage struct {
	PageHeader         *PageHeader         `json:"pageHeader,omitempty"`
	IntroSection       *IntroSection       `json:"introSection,omitempty"`
	PracticeAreas      []PracticeArea      `json:"practiceAreas"`
	PerspectiveSection *PerspectiveSection `json:"perspectiveSection,omitempty"`
	IndustriesSection  *IndustriesSection  `json:"industriesSection,omitempty"`
	CTASection         *CTASection         `json:"ctaSection,omitempty"`
}
