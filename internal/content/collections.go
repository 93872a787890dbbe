// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

// Collection slugs.
const (
	CollectionMedia             = "media"
	CollectionServiceCategories = "service-categories"
	CollectionServices          = "services"
	CollectionIndustries        = "industries"
	CollectionTeamMembers       = "team-members"
	CollectionMegaMenus         = "mega-menus"
)

// Global slugs.
const (
	GlobalSiteSettings = "site-settings"
	GlobalNavigation   = "navigation"
	GlobalFooter       = "footer"
	GlobalHomePage     = "home-page"
	GlobalAdvisoryPage = "advisory-page"
)

// Media is an uploaded asset.
type Media struct {
	ID       ID     `json:"id"`
	URL      string `json:"url,omitempty"`
	Filename string `json:"filename,omitempty"`
	Alt      string `json:"alt,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

func (m Media) DocumentID() ID { return m.ID }

// IsVideo reports whether the asset is a video file.
func (m Media) IsVideo() bool {
	return len(m.MimeType) > 6 && m.MimeType[:6] == "video/"
}

// ServiceCategory groups services.
type ServiceCategory struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

func (c ServiceCategory) DocumentID() ID { return c.ID }

// Service is a single advisory offering.
type Service struct {
	ID               ID                   `json:"id"`
	Title            string               `json:"title"`
	Slug             string               `json:"slug"`
	Category         Ref[ServiceCategory] `json:"category"`
	ShortDescription string               `json:"shortDescription,omitempty"`
	FeaturedImage    Ref[Media]           `json:"featuredImage"`
}

func (s Service) DocumentID() ID { return s.ID }

// Industry is a sector the firm works with.
type Industry struct {
	ID            ID         `json:"id"`
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	FeaturedImage Ref[Media] `json:"featuredImage"`
}

func (i Industry) DocumentID() ID { return i.ID }

// DefaultTeamMemberHref is used when a team member has no profile link.
const DefaultTeamMemberHref = "/about"

// TeamMember is a leadership profile.
type TeamMember struct {
	ID    ID         `json:"id"`
	Name  string     `json:"name"`
	Slug  string     `json:"slug"`
	Role  string     `json:"role"`
	Bio   string     `json:"bio,omitempty"`
	Image Ref[Media] `json:"image"`
	Href  string     `json:"href,omitempty"`
}

func (t TeamMember) DocumentID() ID { return t.ID }

// ProfileHref returns the member link, defaulting to the about page.
func (t TeamMember) ProfileHref() string {
	if t.Href == "" {
		return DefaultTeamMemberHref
	}
	return t.Href
}

// OverviewLink is the lead link of a mega menu panel.
type OverviewLink struct {
	Label        string `json:"label,omitempty"`
	SectionLabel string `json:"sectionLabel,omitempty"`
	Href         string `json:"href,omitempty"`
}

// MegaMenuCategory is one service column of a mega menu. Its services are
// a curated subset expected to belong to Category.
type MegaMenuCategory struct {
	ID       string               `json:"id,omitempty"`
	Category Ref[ServiceCategory] `json:"category"`
	Services []Ref[Service]       `json:"services"`
}

// MegaMenu is the dropdown panel attached to a navigation item.
type MegaMenu struct {
	ID                       ID                 `json:"id"`
	Name                     string             `json:"name"`
	OverviewLink             *OverviewLink      `json:"overviewLink,omitempty"`
	ServicesColumnTitle      string             `json:"servicesColumnTitle,omitempty"`
	ServicesURLPathSegment   string             `json:"servicesUrlPathSegment,omitempty"`
	ServiceCategories        []MegaMenuCategory `json:"serviceCategories"`
	IndustriesColumnTitle    string             `json:"industriesColumnTitle,omitempty"`
	Industries               []Ref[Industry]    `json:"industries"`
	IndustriesURLPathSegment string             `json:"industriesUrlPathSegment,omitempty"`
}

func (m MegaMenu) DocumentID() ID { return m.ID }

// NeedsRefetch reports whether any nested service or industry of the menu
// is still a bare identifier.
func (m MegaMenu) NeedsRefetch() bool {
	if AnyBare(m.Industries) {
		return true
	}
	for _, sc := range m.ServiceCategories {
		if AnyBare(sc.Services) {
			return true
		}
	}
	return false
}
