// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/aryes-site/internal/content"
	"github.com/olegiv/aryes-site/internal/docstore"
	"github.com/olegiv/aryes-site/internal/resolver"
)

// HomeService assembles the home page.
type HomeService struct {
	base
}

// NewHomeService creates a new HomeService.
func NewHomeService(store docstore.Store, logger *slog.Logger) *HomeService {
	return &HomeService{base: newBase(store, logger)}
}

// Home returns the home page view model, or nil when the home page global
// is not configured. Sections missing from the global are nil.
func (s *HomeService) Home(ctx context.Context, locale content.Locale) (*HomeView, error) {
	page, err := global[content.HomePage](ctx, s.store, content.GlobalHomePage, locale, HomeDepth)
	if err != nil || page == nil {
		return nil, err
	}

	view := &HomeView{Locale: locale}

	g, gctx := errgroup.WithContext(ctx)
	if page.Hero != nil {
		g.Go(func() (err error) {
			view.Hero, err = s.hero(gctx, locale, page.Hero)
			return err
		})
	}
	if page.WhatWeDo != nil {
		g.Go(func() (err error) {
			view.WhatWeDo, err = s.whatWeDo(gctx, locale, page.WhatWeDo)
			return err
		})
	}
	if page.Approach != nil {
		g.Go(func() (err error) {
			view.Approach, err = s.approach(gctx, locale, page.Approach)
			return err
		})
	}
	if page.Leadership != nil {
		g.Go(func() (err error) {
			view.Leadership, err = s.leadership(gctx, locale, page.Leadership)
			return err
		})
	}
	if page.Contact != nil {
		g.Go(func() (err error) {
			view.Contact, err = contactView(locale, page.Contact)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}

func (s *HomeService) hero(ctx context.Context, locale content.Locale, h *content.Hero) (*HeroView, error) {
	refs := make([]content.Ref[content.Media], 0, len(h.Videos))
	for _, v := range h.Videos {
		refs = append(refs, v.Video)
	}
	videos, err := resolver.Many(ctx, s.resolver, scope(locale), content.CollectionMedia, refs)
	if err != nil {
		return nil, err
	}

	subtitle, err := html(h.Subtitle)
	if err != nil {
		return nil, err
	}

	buttons := make([]content.CTAButton, len(h.CTAButtons))
	for i, b := range h.CTAButtons {
		if b.Style == "" {
			b.Style = content.ButtonPrimary
		}
		b.Href = content.LocalizedHref(locale, b.Href)
		buttons[i] = b
	}

	return &HeroView{
		Title:          h.Title,
		TitleHighlight: h.TitleHighlight,
		Subtitle:       subtitle,
		Videos:         videos,
		CTAButtons:     buttons,
		ScrollLabel:    h.ScrollLabel,
	}, nil
}

// whatWeDo keeps every card. A card whose image no longer exists is shown
// without one.
func (s *HomeService) whatWeDo(ctx context.Context, locale content.Locale, w *content.WhatWeDo) (*WhatWeDoView, error) {
	cards := make([]CardView, len(w.Cards))
	for i, c := range w.Cards {
		img, err := s.media(ctx, locale, c.Image)
		if err != nil {
			return nil, err
		}
		cards[i] = CardView{
			Badge:       c.Badge,
			Title:       c.Title,
			Description: c.Description,
			Image:       img,
		}
		if c.Href != "" {
			cards[i].Href = content.LocalizedHref(locale, c.Href)
		}
	}
	return &WhatWeDoView{Cards: cards, LearnMoreLabel: w.LearnMoreLabel}, nil
}

func (s *HomeService) approach(ctx context.Context, locale content.Locale, a *content.Approach) (*ApproachView, error) {
	img, err := s.media(ctx, locale, a.Image)
	if err != nil {
		return nil, err
	}
	title, err := html(a.Title)
	if err != nil {
		return nil, err
	}
	v := &ApproachView{
		Label:       a.Label,
		Title:       title,
		Description: a.Description,
		CTALabel:    a.CTALabel,
		Image:       img,
	}
	if a.CTAHref != "" {
		v.CTAHref = content.LocalizedHref(locale, a.CTAHref)
	}
	return v, nil
}

func (s *HomeService) leadership(ctx context.Context, locale content.Locale, l *content.Leadership) (*LeadershipView, error) {
	members, err := resolver.Many(ctx, s.resolver, scope(locale), content.CollectionTeamMembers, l.TeamMembers,
		func(ctx context.Context, m *content.TeamMember) error {
			img, err := s.media(ctx, locale, m.Image)
			if err != nil {
				return err
			}
			m.Image = expanded(img)
			return nil
		})
	if err != nil {
		return nil, err
	}

	views := make([]TeamMemberView, len(members))
	for i, m := range members {
		views[i] = TeamMemberView{
			ID:    m.ID,
			Name:  m.Name,
			Slug:  m.Slug,
			Role:  m.Role,
			Bio:   m.Bio,
			Href:  content.LocalizedHref(locale, m.ProfileHref()),
			Image: m.Image.Doc(),
		}
	}
	return &LeadershipView{
		Label:       l.Label,
		Title:       l.Title,
		Description: l.Description,
		TeamMembers: views,
	}, nil
}

func contactView(locale content.Locale, c *content.Contact) (*ContactView, error) {
	title, err := html(c.Title)
	if err != nil {
		return nil, err
	}
	v := &ContactView{
		Title:       title,
		Description: c.Description,
		Email:       c.Email,
		Location:    c.Location,
		CTALabel:    c.CTALabel,
	}
	if c.CTAHref != "" {
		v.CTAHref = content.LocalizedHref(locale, c.CTAHref)
	}
	return v, nil
}
