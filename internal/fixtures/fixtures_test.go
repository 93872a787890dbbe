// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package fixtures

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"testing"

	"github.com/olegiv/aryes-site/internal/content"
	"github.com/olegiv/aryes-site/internal/docstore"
)

func newEngine(t *testing.T) *docstore.Engine {
	t.Helper()
	fx, err := Site()
	if err != nil {
		t.Fatalf("Site() error = %v", err)
	}
	backend := docstore.NewMemoryBackend()
	if err := fx.Apply(context.Background(), backend); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	return docstore.NewEngine(backend, docstore.DefaultSchema(), nil)
}

// decoders decode a raw document into its content type.
var (
	globalDecoders = map[string]func(json.RawMessage) error{
		content.GlobalSiteSettings: decodeAs[content.SiteSettings],
		content.GlobalNavigation:   decodeAs[content.Navigation],
		content.GlobalFooter:       decodeAs[content.Footer],
		content.GlobalHomePage:     decodeAs[content.HomePage],
		content.GlobalAdvisoryPage: decodeAs[content.AdvisoryPage],
	}
	collectionDecoders = map[string]func(json.RawMessage) error{
		content.CollectionMedia:             decodeAs[content.Media],
		content.CollectionServiceCategories: decodeAs[content.ServiceCategory],
		content.CollectionServices:          decodeAs[content.Service],
		content.CollectionIndustries:        decodeAs[content.Industry],
		content.CollectionTeamMembers:       decodeAs[content.TeamMember],
		content.CollectionMegaMenus:         decodeAs[content.MegaMenu],
	}
)

func decodeAs[T any](raw json.RawMessage) error {
	_, err := docstore.Decode[T](raw)
	return err
}

// localeMap returns the path of the first object whose keys are all locale
// codes, which means a localized field was left unresolved.
func localeMap(v any, path string) string {
	switch n := v.(type) {
	case map[string]any:
		if len(n) > 0 {
			all := true
			for k := range n {
				if k != string(content.LocaleEN) && k != string(content.LocaleFR) {
					all = false
					break
				}
			}
			if all {
				return path
			}
		}
		keys := make([]string, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if p := localeMap(n[k], path+"."+k); p != "" {
				return p
			}
		}
	case []any:
		for i, e := range n {
			if p := localeMap(e, fmt.Sprintf("%s[%d]", path, i)); p != "" {
				return p
			}
		}
	}
	return ""
}

func checkDoc(t *testing.T, name string, raw json.RawMessage, decode func(json.RawMessage) error) {
	t.Helper()
	if err := decode(raw); err != nil {
		t.Errorf("%s: %v", name, err)
		return
	}
	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	if p := localeMap(tree, name); p != "" {
		t.Errorf("%s: unresolved localized value at %s", name, p)
	}
}

func TestSiteGlobalsDecode(t *testing.T) {
	engine := newEngine(t)
	ctx := context.Background()

	for _, locale := range []content.Locale{content.LocaleEN, content.LocaleFR} {
		for depth := 0; depth <= 3; depth++ {
			t.Run(fmt.Sprintf("%s/depth=%d", locale, depth), func(t *testing.T) {
				opts := docstore.Options{Locale: locale, Depth: depth}
				for slug, decode := range globalDecoders {
					raw, err := engine.FindGlobal(ctx, slug, opts)
					if err != nil {
						t.Fatalf("FindGlobal(%q) error = %v", slug, err)
					}
					checkDoc(t, slug, raw, decode)
				}
			})
		}
	}
}

func TestSiteCollectionsDecode(t *testing.T) {
	engine := newEngine(t)
	ctx := context.Background()

	for _, locale := range []content.Locale{content.LocaleEN, content.LocaleFR} {
		for depth := 0; depth <= 2; depth++ {
			t.Run(fmt.Sprintf("%s/depth=%d", locale, depth), func(t *testing.T) {
				for collection, decode := range collectionDecoders {
					res, err := engine.Find(ctx, collection, docstore.Query{
						Options: docstore.Options{Locale: locale, Depth: depth},
					})
					if err != nil {
						t.Fatalf("Find(%q) error = %v", collection, err)
					}
					if len(res.Docs) == 0 {
						t.Errorf("Find(%q) returned no documents", collection)
					}
					for i, raw := range res.Docs {
						checkDoc(t, fmt.Sprintf("%s[%d]", collection, i), raw, decode)
					}
				}
			})
		}
	}
}

func TestSiteHomeContactLocation(t *testing.T) {
	engine := newEngine(t)

	tests := []struct {
		locale content.Locale
		want   string
	}{
		{content.LocaleEN, "Geneva"},
		{content.LocaleFR, "Genève"},
	}
	for _, tt := range tests {
		home, err := docstore.Global[content.HomePage](context.Background(), engine, content.GlobalHomePage,
			docstore.Options{Locale: tt.locale, Depth: 2})
		if err != nil {
			t.Fatalf("Global(home-page, %s) error = %v", tt.locale, err)
		}
		if home.Contact.Location != tt.want {
			t.Errorf("Contact.Location (%s) = %q, want %q", tt.locale, home.Contact.Location, tt.want)
		}
	}
}
