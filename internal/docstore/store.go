// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package docstore defines the read contract of the content store and a
// schema aware engine implementing it over raw document backends.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/olegiv/aryes-site/internal/content"
)

// ErrNotFound is returned when a global or document does not exist.
var ErrNotFound = errors.New("docstore: not found")

// DefaultLimit is applied to Find queries without an explicit limit.
const DefaultLimit = 10

// Options select the locale and population depth of a read.
type Options struct {
	Locale         content.Locale
	FallbackLocale content.Locale
	// Depth is the number of relationship levels expanded into documents.
	// Relationships deeper than Depth are returned as bare identifiers.
	Depth int
}

// Fallback returns the fallback locale, defaulting to content.FallbackLocale.
func (o Options) Fallback() content.Locale {
	if o.FallbackLocale == "" {
		return content.FallbackLocale
	}
	return o.FallbackLocale
}

// Operator is a where clause comparison.
type Operator string

// Supported operators.
const (
	OpIn     Operator = "in"
	OpEquals Operator = "equals"
)

// Condition filters documents on a top level field.
type Condition struct {
	Field  string
	Op     Operator
	Values []string
}

// IDIn matches documents whose id is one of ids.
func IDIn(ids ...content.ID) Condition {
	values := make([]string, len(ids))
	for i, id := range ids {
		values[i] = id.String()
	}
	return Condition{Field: "id", Op: OpIn, Values: values}
}

// Equals matches documents whose field equals value.
func Equals(field, value string) Condition {
	return Condition{Field: field, Op: OpEquals, Values: []string{value}}
}

// Query describes a Find call.
type Query struct {
	Options
	Where []Condition
	Limit int
	// Sort is a field name, prefixed with "-" for descending order.
	Sort string
}

// Result is a page of documents.
type Result struct {
	Docs      []json.RawMessage `json:"docs"`
	TotalDocs int               `json:"totalDocs"`
}

// Store is the read contract of the content store. Returned documents have
// localized fields resolved for the requested locale and relationship
// fields expanded up to the requested depth.
type Store interface {
	FindGlobal(ctx context.Context, slug string, opts Options) (json.RawMessage, error)
	FindByID(ctx context.Context, collection string, id content.ID, opts Options) (json.RawMessage, error)
	Find(ctx context.Context, collection string, q Query) (*Result, error)
}

// Pinger is implemented by stores that can report their availability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Global reads and decodes a global. Store errors are returned unchanged.
func Global[T any](ctx context.Context, s Store, slug string, opts Options) (*T, error) {
	raw, err := s.FindGlobal(ctx, slug, opts)
	if err != nil {
		return nil, err
	}
	return Decode[T](raw)
}

// ByID reads and decodes a single document. Store errors are returned
// unchanged.
func ByID[T any](ctx context.Context, s Store, collection string, id content.ID, opts Options) (*T, error) {
	raw, err := s.FindByID(ctx, collection, id, opts)
	if err != nil {
		return nil, err
	}
	return Decode[T](raw)
}

// FindAll runs a query and decodes every returned document.
func FindAll[T any](ctx context.Context, s Store, collection string, q Query) ([]T, error) {
	res, err := s.Find(ctx, collection, q)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(res.Docs))
	for _, raw := range res.Docs {
		doc, err := Decode[T](raw)
		if err != nil {
			return nil, err
		}
		out = append(out, *doc)
	}
	return out, nil
}

// Decode unmarshals a raw document.
func Decode[T any](raw json.RawMessage) (*T, error) {
	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding %T: %w", doc, err)
	}
	return &doc, nil
}
