// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n provides the site locales, Accept-Language negotiation and
// the translated labels used in view models.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/olegiv/aryes-site/internal/content"
)

//go:embed locales
var localesFS embed.FS

// Label forms.
const (
	Singular = "singular"
	Plural   = "plural"
)

// Bundle is the translation file of one locale.
type Bundle struct {
	Locale      string                       `json:"locale"`
	Collections map[string]map[string]string `json:"collections"` // slug -> form -> label
	Languages   map[string]string            `json:"languages"`   // locale -> name
	Messages    map[string]string            `json:"messages"`
}

// catalog holds the bundles of the supported locales.
type catalog struct {
	mu      sync.RWMutex
	bundles map[string]*Bundle
	matcher language.Matcher
	tags    []language.Tag
	logger  *slog.Logger
}

var current *catalog

// SupportedLanguages lists the site locales. The first one is the default
// and the fallback for missing translations.
var SupportedLanguages = []string{string(content.LocaleEN), string(content.LocaleFR)}

// Init loads the bundle of every supported locale. Keys present in the
// default bundle but missing elsewhere are logged; lookups fall back to the
// default locale for them.
func Init(logger *slog.Logger) error {
	c := &catalog{
		bundles: make(map[string]*Bundle, len(SupportedLanguages)),
		logger:  logger,
	}

	for _, lang := range SupportedLanguages {
		tag, err := language.Parse(lang)
		if err != nil {
			return fmt.Errorf("parsing locale %q: %w", lang, err)
		}
		c.tags = append(c.tags, tag)

		b, err := loadBundle(lang)
		if err != nil {
			return err
		}
		c.bundles[lang] = b
	}
	c.matcher = language.NewMatcher(c.tags)

	if logger != nil {
		def := c.bundles[SupportedLanguages[0]]
		for _, lang := range SupportedLanguages[1:] {
			if missing := missingKeys(def, c.bundles[lang]); len(missing) > 0 {
				logger.Warn("incomplete translations", "locale", lang, "missing", missing)
			}
		}
		logger.Info("i18n initialized", "locales", SupportedLanguages)
	}

	current = c
	return nil
}

func loadBundle(lang string) (*Bundle, error) {
	path := "locales/" + lang + "/messages.json"
	data, err := localesFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if b.Locale != lang {
		return nil, fmt.Errorf("%s declares locale %q", path, b.Locale)
	}
	return &b, nil
}

// missingKeys lists the keys of ref absent from b, sorted.
func missingKeys(ref, b *Bundle) []string {
	var out []string
	for slug, forms := range ref.Collections {
		for form := range forms {
			if _, ok := b.Collections[slug][form]; !ok {
				out = append(out, "collections."+slug+"."+form)
			}
		}
	}
	for code := range ref.Languages {
		if _, ok := b.Languages[code]; !ok {
			out = append(out, "languages."+code)
		}
	}
	for key := range ref.Messages {
		if _, ok := b.Messages[key]; !ok {
			out = append(out, "messages."+key)
		}
	}
	slices.Sort(out)
	return out
}

// lookup returns the first value pick finds in the bundle of lang, then in
// the default bundle.
func lookup(lang string, pick func(*Bundle) (string, bool)) (string, bool) {
	c := current
	if c == nil {
		return "", false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if b, ok := c.bundles[lang]; ok {
		if v, ok := pick(b); ok {
			return v, true
		}
	}
	if def := SupportedLanguages[0]; lang != def {
		if v, ok := pick(c.bundles[def]); ok {
			if c.logger != nil {
				c.logger.Debug("missing translation, using default", "locale", lang)
			}
			return v, true
		}
	}
	return "", false
}

// T translates a message key. Unknown keys are returned as is. Arguments
// are applied with fmt.Sprintf.
func T(lang, key string, args ...any) string {
	msg, ok := lookup(lang, func(b *Bundle) (string, bool) {
		v, ok := b.Messages[key]
		return v, ok
	})
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// CollectionLabel returns the translated label of a collection, for
// example "Services" for ("services", "en", Plural).
func CollectionLabel(collection string, locale content.Locale, form string) string {
	label, ok := lookup(string(locale), func(b *Bundle) (string, bool) {
		v, ok := b.Collections[collection][form]
		return v, ok
	})
	if !ok {
		return collection
	}
	return label
}

// LanguageName returns the name of a locale in that locale.
func LanguageName(locale content.Locale) string {
	name, ok := lookup(string(locale), func(b *Bundle) (string, bool) {
		v, ok := b.Languages[string(locale)]
		return v, ok
	})
	if !ok {
		return strings.ToUpper(string(locale))
	}
	return name
}

// Locales returns the supported locales.
func Locales() []content.Locale {
	out := make([]content.Locale, len(SupportedLanguages))
	for i, l := range SupportedLanguages {
		out[i] = content.Locale(l)
	}
	return out
}

// DefaultLanguage returns the default site locale.
func DefaultLanguage() string {
	return SupportedLanguages[0]
}

// MatchLanguage finds the best supported locale for an Accept-Language
// header or a single language code.
func MatchLanguage(acceptLang string) string {
	c := current
	if c == nil {
		return DefaultLanguage()
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		return DefaultLanguage()
	}

	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(SupportedLanguages) {
		return DefaultLanguage()
	}
	return SupportedLanguages[idx]
}

// IsSupported reports whether lang is a site locale, ignoring case.
func IsSupported(lang string) bool {
	return slices.Contains(SupportedLanguages, strings.ToLower(lang))
}
