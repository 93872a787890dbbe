// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package docstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Fixtures is a set of raw documents loaded from YAML:
//
//	globals:
//	  navigation:
//	    items:
//	      - label: {en: Advisory, fr: Conseil}
//	        href: /advisory
//	        megaMenu: 7
//	collections:
//	  mega-menus:
//	    - id: 7
//	      name: Advisory
type Fixtures struct {
	Globals     map[string]map[string]any   `yaml:"globals"`
	Collections map[string][]map[string]any `yaml:"collections"`
}

// LoadFixtures decodes fixtures from r.
func LoadFixtures(r io.Reader) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &Fixtures{}, nil
		}
		return nil, fmt.Errorf("decoding fixtures: %w", err)
	}
	return &f, nil
}

// LoadFixturesFile decodes fixtures from a file.
func LoadFixturesFile(path string) (*Fixtures, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return LoadFixtures(f)
}

// Apply writes every fixture document to w.
func (f *Fixtures) Apply(ctx context.Context, w Writer) error {
	for _, slug := range slices.Sorted(maps.Keys(f.Globals)) {
		if err := w.PutGlobal(ctx, slug, f.Globals[slug]); err != nil {
			return err
		}
	}
	for _, collection := range slices.Sorted(maps.Keys(f.Collections)) {
		for _, doc := range f.Collections[collection] {
			if err := w.Put(ctx, collection, doc); err != nil {
				return err
			}
		}
	}
	return nil
}

// Count returns the number of globals and collection documents.
func (f *Fixtures) Count() (globals, documents int) {
	for _, docs := range f.Collections {
		documents += len(docs)
	}
	return len(f.Globals), documents
}
