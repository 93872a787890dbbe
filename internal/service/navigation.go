// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/aryes-site/internal/content"
	"github.com/olegiv/aryes-site/internal/docstore"
	"github.com/olegiv/aryes-site/internal/i18n"
	"github.com/olegiv/aryes-site/internal/resolver"
)

// NavigationService assembles the site header.
type NavigationService struct {
	base
}

// NewNavigationService creates a new NavigationService.
func NewNavigationService(store docstore.Store, logger *slog.Logger) *NavigationService {
	return &NavigationService{base: newBase(store, logger)}
}

// Header returns the header view model for locale, or nil when the
// navigation global is not configured. Every service and industry of every
// mega menu in the result is expanded.
func (s *NavigationService) Header(ctx context.Context, locale content.Locale) (*HeaderView, error) {
	var (
		nav      *content.Navigation
		settings *content.SiteSettings
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		nav, err = global[content.Navigation](gctx, s.store, content.GlobalNavigation, locale, NavigationDepth)
		return err
	})
	g.Go(func() (err error) {
		settings, err = global[content.SiteSettings](gctx, s.store, content.GlobalSiteSettings, locale, SettingsDepth)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if nav == nil {
		s.logger.Debug("navigation not configured", "locale", locale)
		return nil, nil
	}

	items := make([]NavItemView, len(nav.Items))
	g, gctx = errgroup.WithContext(ctx)
	for i, item := range nav.Items {
		items[i] = NavItemView{
			Key:   item.Key(),
			Label: item.Label,
			Href:  content.LocalizedHref(locale, item.Href),
		}
		if item.MegaMenu.IsZero() {
			continue
		}
		g.Go(func() error {
			mm, err := s.megaMenu(gctx, locale, item)
			if err != nil {
				return err
			}
			items[i].MegaMenu = mm
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logo, err := s.logo(ctx, locale, settings)
	if err != nil {
		return nil, err
	}

	return &HeaderView{
		Locale:        locale,
		HomeHref:      content.LocalizedHref(locale, "/"),
		Logo:          logo,
		Items:         items,
		ServicesLabel: i18n.CollectionLabel(content.CollectionServices, locale, i18n.Plural),
	}, nil
}

// freshMegaMenu returns the mega menu of item. A bare menu, or an embedded
// one whose services or industries are still bare, is read again as a
// whole at MegaMenuDepth. Nil means the menu no longer exists.
func (s *NavigationService) freshMegaMenu(ctx context.Context, locale content.Locale, item content.NavigationItem) (*content.MegaMenu, error) {
	ref := item.MegaMenu
	if ref.IsExpanded() && !ref.Doc().NeedsRefetch() {
		menu := *ref.Doc()
		return &menu, nil
	}

	s.logger.Debug("refetching mega menu",
		"nav_item", item.Key(), "mega_menu", ref.ID(), "bare", ref.IsBare(), "locale", locale)
	return resolver.One(ctx, s.resolver,
		resolver.Scope{Locale: locale, Depth: MegaMenuDepth},
		content.CollectionMegaMenus, content.Reference[content.MegaMenu](ref.ID()))
}

func (s *NavigationService) megaMenu(ctx context.Context, locale content.Locale, item content.NavigationItem) (*MegaMenuView, error) {
	menu, err := s.freshMegaMenu(ctx, locale, item)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		s.logger.Warn("navigation item references a missing mega menu",
			"nav_item", item.Key(), "mega_menu", item.MegaMenu.ID(), "locale", locale)
		return nil, nil
	}

	// The refetch may itself be shallower than needed, so every declared
	// path goes through the resolver.
	type column struct {
		category *content.ServiceCategory
		services []content.Service
	}
	columns := make([]column, len(menu.ServiceCategories))
	var industries []content.Industry

	g, gctx := errgroup.WithContext(ctx)
	for i, sc := range menu.ServiceCategories {
		g.Go(func() error {
			cat, err := resolver.One(gctx, s.resolver, scope(locale), content.CollectionServiceCategories, sc.Category)
			if err != nil {
				return err
			}
			services, err := resolver.Many(gctx, s.resolver, scope(locale), content.CollectionServices, sc.Services,
				s.serviceRelations(locale))
			if err != nil {
				return err
			}
			columns[i] = column{category: cat, services: services}
			return nil
		})
	}
	g.Go(func() (err error) {
		industries, err = resolver.Many(gctx, s.resolver, scope(locale), content.CollectionIndustries, menu.Industries,
			s.industryRelations(locale))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	servicesLabel := i18n.CollectionLabel(content.CollectionServices, locale, i18n.Plural)

	view := &MegaMenuView{
		ID:                    menu.ID,
		Name:                  menu.Name,
		ServicesColumnTitle:   menu.ServicesColumnTitle,
		ServiceCategories:     make([]MegaMenuCategoryView, 0, len(columns)),
		IndustriesColumnTitle: menu.IndustriesColumnTitle,
		Industries:            make([]IndustryView, 0, len(industries)),
	}
	if menu.OverviewLink != nil {
		link := *menu.OverviewLink
		link.Href = content.LocalizedHref(locale, link.Href)
		view.OverviewLink = &link
	}

	for i, col := range columns {
		if col.category == nil || len(col.services) == 0 {
			s.logger.Warn("skipping empty mega menu column",
				"mega_menu", menu.ID, "column", menu.ServiceCategories[i].ID, "locale", locale)
			continue
		}
		cv := MegaMenuCategoryView{
			Category:      categoryView(*col.category),
			Services:      make([]ServiceView, 0, len(col.services)),
			MobileHeading: servicesLabel + " | " + strings.ToUpper(col.category.Name),
		}
		for _, svc := range col.services {
			if id := svc.Category.ID(); id != 0 && id != col.category.ID {
				// Editorial convention, not enforced.
				s.logger.Debug("mega menu service listed under another category",
					"service", svc.ID, "service_category", id, "column_category", col.category.ID)
			}
			cv.Services = append(cv.Services, serviceView(svc, menu.ServiceHref(locale, item.Href, svc.Slug)))
		}
		view.ServiceCategories = append(view.ServiceCategories, cv)
	}

	for _, ind := range industries {
		view.Industries = append(view.Industries, industryView(ind, menu.IndustryHref(locale, item.Href, ind.Slug)))
	}

	return view, nil
}
