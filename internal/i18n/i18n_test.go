// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package i18n

import (
	"os"
	"testing"

	"github.com/olegiv/aryes-site/internal/content"
)

func TestMain(m *testing.M) {
	if err := Init(nil); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestT(t *testing.T) {
	tests := []struct {
		lang string
		key  string
		args []any
		want string
	}{
		{"en", "missing.navigation", nil, "Navigation is not configured."},
		{"fr", "missing.footer", nil, "Le pied de page n'est pas configuré."},
		{"en", "error.locale", []any{"de"}, "Unsupported locale: de"},
		{"fr", "error.locale", []any{"de"}, "Langue non prise en charge : de"},
		{"de", "missing.footer", nil, "Footer is not configured."},
		{"en", "nonexistent.key", nil, "nonexistent.key"},
	}

	for _, tt := range tests {
		t.Run(tt.lang+"_"+tt.key, func(t *testing.T) {
			if got := T(tt.lang, tt.key, tt.args...); got != tt.want {
				t.Errorf("T(%q, %q) = %q, want %q", tt.lang, tt.key, got, tt.want)
			}
		})
	}
}

func TestCollectionLabel(t *testing.T) {
	tests := []struct {
		collection string
		locale     content.Locale
		form       string
		want       string
	}{
		{content.CollectionServices, content.LocaleEN, Plural, "Services"},
		{content.CollectionIndustries, content.LocaleFR, Singular, "Industrie"},
		{content.CollectionTeamMembers, content.LocaleFR, Singular, "Membre de l'équipe"},
		{content.CollectionServiceCategories, content.LocaleFR, Plural, "Catégories de services"},
		{content.CollectionMegaMenus, content.LocaleEN, Singular, "Mega Menu"},
		{"unknown", content.LocaleEN, Plural, "unknown"},
	}

	for _, tt := range tests {
		if got := CollectionLabel(tt.collection, tt.locale, tt.form); got != tt.want {
			t.Errorf("CollectionLabel(%q, %q, %q) = %q, want %q", tt.collection, tt.locale, tt.form, got, tt.want)
		}
	}
}

func TestLanguageName(t *testing.T) {
	if got := LanguageName(content.LocaleFR); got != "Français" {
		t.Errorf("LanguageName(fr) = %q, want %q", got, "Français")
	}
	if got := LanguageName(content.LocaleEN); got != "English" {
		t.Errorf("LanguageName(en) = %q, want %q", got, "English")
	}
	if got := LanguageName("de"); got != "DE" {
		t.Errorf("LanguageName(de) = %q, want %q", got, "DE")
	}
}

func TestMatchLanguage(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"en", "en"},
		{"fr", "fr"},
		{"en-US", "en"},
		{"fr-CH", "fr"},
		{"de", "en"},
		{"", "en"},
		{"en-US, fr;q=0.9, de;q=0.8", "en"},
		{"fr-FR, en;q=0.9", "fr"},
		{"de-CH, fr;q=0.8", "fr"},
		{"*", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := MatchLanguage(tt.input); got != tt.want {
				t.Errorf("MatchLanguage(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		lang string
		want bool
	}{
		{"en", true},
		{"FR", true},
		{"de", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsSupported(tt.lang); got != tt.want {
			t.Errorf("IsSupported(%q) = %v, want %v", tt.lang, got, tt.want)
		}
	}
}

func TestLocales(t *testing.T) {
	got := Locales()
	if len(got) != 2 || got[0] != content.LocaleEN || got[1] != content.LocaleFR {
		t.Errorf("Locales() = %v, want [en fr]", got)
	}
	if DefaultLanguage() != "en" {
		t.Errorf("DefaultLanguage() = %q, want %q", DefaultLanguage(), "en")
	}
}

func TestBundlesComplete(t *testing.T) {
	def, err := loadBundle(SupportedLanguages[0])
	if err != nil {
		t.Fatal(err)
	}
	for _, lang := range SupportedLanguages[1:] {
		b, err := loadBundle(lang)
		if err != nil {
			t.Fatal(err)
		}
		if missing := missingKeys(def, b); len(missing) > 0 {
			t.Errorf("%s is missing %v", lang, missing)
		}
		if missing := missingKeys(b, def); len(missing) > 0 {
			t.Errorf("%s has keys absent from %s: %v", lang, def.Locale, missing)
		}
	}
}

func TestMissingKeys(t *testing.T) {
	ref := &Bundle{
		Collections: map[string]map[string]string{"services": {Singular: "Service", Plural: "Services"}},
		Languages:   map[string]string{"en": "English"},
		Messages:    map[string]string{"a": "A", "b": "B"},
	}
	b := &Bundle{
		Collections: map[string]map[string]string{"services": {Plural: "Services"}},
		Messages:    map[string]string{"a": "A"},
	}

	got := missingKeys(ref, b)
	want := []string{"collections.services.singular", "languages.en", "messages.b"}
	if len(got) != len(want) {
		t.Fatalf("missingKeys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("missingKeys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLoadBundleUnknownLocale(t *testing.T) {
	if _, err := loadBundle("de"); err == nil {
		t.Error("loadBundle(de) succeeded, want error")
	}
}
