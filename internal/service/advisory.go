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

// AdvisoryService assembles the advisory page.
type AdvisoryService struct {
	base
}

// NewAdvisoryService creates a new AdvisoryService.
func NewAdvisoryService(store docstore.Store, logger *slog.Logger) *AdvisoryService {
	return &AdvisoryService{base: newBase(store, logger)}
}

// Advisory returns the advisory page view model, or nil when the advisory
// page global is not configured.
//
// Practice areas are normalized: the category is always an expanded
// document and Services is always a slice of expanded services. A practice
// area whose category no longer exists is left out.
func (s *AdvisoryService) Advisory(ctx context.Context, locale content.Locale) (*AdvisoryView, error) {
	page, err := global[content.AdvisoryPage](ctx, s.store, content.GlobalAdvisoryPage, locale, AdvisoryDepth)
	if err != nil || page == nil {
		return nil, err
	}

	view := &AdvisoryView{
		Locale:        locale,
		PracticeAreas: make([]PracticeAreaView, 0, len(page.PracticeAreas)),
		Perspective:   page.PerspectiveSection,
	}
	areas := make([]*PracticeAreaView, len(page.PracticeAreas))

	g, gctx := errgroup.WithContext(ctx)
	if page.PageHeader != nil {
		g.Go(func() (err error) {
			view.PageHeader, err = s.pageHeader(gctx, locale, page.PageHeader)
			return err
		})
	}
	for i, pa := range page.PracticeAreas {
		g.Go(func() (err error) {
			areas[i], err = s.practiceArea(gctx, locale, pa)
			return err
		})
	}
	if page.IndustriesSection != nil {
		g.Go(func() (err error) {
			view.Industries, err = s.industries(gctx, locale, page.IndustriesSection)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, a := range areas {
		if a != nil {
			view.PracticeAreas = append(view.PracticeAreas, *a)
		}
	}

	if page.IntroSection != nil {
		title, err := html(page.IntroSection.Title)
		if err != nil {
			return nil, err
		}
		view.Intro = &IntroView{Title: title, Description: page.IntroSection.Description}
	}

	if page.CTASection != nil {
		view.CTA, err = ctaView(locale, page.CTASection)
		if err != nil {
			return nil, err
		}
	}

	return view, nil
}

func (s *AdvisoryService) pageHeader(ctx context.Context, locale content.Locale, h *content.PageHeader) (*PageHeaderView, error) {
	img, err := s.media(ctx, locale, h.Image)
	if err != nil {
		return nil, err
	}
	size := h.Size
	if size == "" {
		size = content.HeaderStandard
	}
	return &PageHeaderView{
		Category:     h.Category,
		Title:        h.Title,
		Subtitle:     h.Subtitle,
		Image:        img,
		WithBlueLine: h.WithBlueLine,
		Size:         size,
	}, nil
}

func (s *AdvisoryService) practiceArea(ctx context.Context, locale content.Locale, pa content.PracticeArea) (*PracticeAreaView, error) {
	cat, err := resolver.One(ctx, s.resolver, scope(locale), content.CollectionServiceCategories, pa.Category)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		s.logger.Warn("dropping practice area without category",
			"practice_area", pa.ID, "category", pa.Category.ID(), "locale", locale)
		return nil, nil
	}

	services, err := resolver.Many(ctx, s.resolver, scope(locale), content.CollectionServices, pa.Services,
		s.serviceRelations(locale))
	if err != nil {
		return nil, err
	}

	img, err := s.media(ctx, locale, pa.Image)
	if err != nil {
		return nil, err
	}

	views := make([]ServiceView, 0, len(services))
	for _, svc := range services {
		if id := svc.Category.ID(); id != 0 && id != cat.ID {
			s.logger.Debug("practice area service listed under another category",
				"practice_area", pa.ID, "service", svc.ID, "service_category", id)
		}
		href := content.LocalizedHref(locale, AdvisoryPath+"/"+content.DefaultServicesSegment+"/"+svc.Slug)
		views = append(views, serviceView(svc, href))
	}

	return &PracticeAreaView{
		ID:             pa.ID,
		PracticeNumber: pa.PracticeNumber,
		Category:       categoryView(*cat),
		Description:    pa.Description,
		Services:       views,
		Image:          img,
	}, nil
}

func (s *AdvisoryService) industries(ctx context.Context, locale content.Locale, sec *content.IndustriesSection) (*IndustriesSectionView, error) {
	industries, err := resolver.Many(ctx, s.resolver, scope(locale), content.CollectionIndustries, sec.Industries,
		s.industryRelations(locale))
	if err != nil {
		return nil, err
	}
	views := make([]IndustryView, len(industries))
	for i, ind := range industries {
		href := content.LocalizedHref(locale, AdvisoryPath+"/"+content.DefaultIndustriesSegment+"/"+ind.Slug)
		views[i] = industryView(ind, href)
	}
	return &IndustriesSectionView{Title: sec.Title, Description: sec.Description, Industries: views}, nil
}

func ctaView(locale content.Locale, c *content.CTASection) (*CTAView, error) {
	title, err := html(c.Title)
	if err != nil {
		return nil, err
	}
	bg := c.BackgroundColor
	if bg == "" {
		bg = content.BackgroundStone
	}
	v := &CTAView{
		Title:           title,
		Subtitle:        c.Subtitle,
		ButtonText:      c.ButtonText,
		BackgroundColor: bg,
	}
	if c.ButtonLink != "" {
		v.ButtonLink = content.LocalizedHref(locale, c.ButtonLink)
	}
	return v, nil
}
