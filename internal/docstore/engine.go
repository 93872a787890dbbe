// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package docstore

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/olegiv/aryes-site/internal/content"
)

// Backend stores raw documents. Localized fields are stored as objects keyed
// by locale and relationship fields as bare identifiers.
// Implementations must be safe for concurrent use.
type Backend interface {
	Global(ctx context.Context, slug string) (json.RawMessage, error)
	Document(ctx context.Context, collection string, id content.ID) (json.RawMessage, error)
	Documents(ctx context.Context, collection string) ([]json.RawMessage, error)
}

// Engine implements Store over a Backend. It resolves localized fields with
// fallback and expands relationships up to the requested depth.
type Engine struct {
	backend Backend
	schema  *Schema
	logger  *slog.Logger
}

// NewEngine creates an engine. A nil schema selects DefaultSchema.
func NewEngine(backend Backend, schema *Schema, logger *slog.Logger) *Engine {
	if schema == nil {
		schema = DefaultSchema()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{backend: backend, schema: schema, logger: logger}
}

// Ping checks the backend when it supports it.
func (e *Engine) Ping(ctx context.Context) error {
	if p, ok := e.backend.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// FindGlobal returns a global.
func (e *Engine) FindGlobal(ctx context.Context, slug string, opts Options) (json.RawMessage, error) {
	raw, err := e.backend.Global(ctx, slug)
	if err != nil {
		return nil, err
	}
	doc, err := e.prepare(ctx, raw, e.schema.Global(slug), opts, opts.Depth)
	if err != nil {
		return nil, fmt.Errorf("global %s: %w", slug, err)
	}
	return json.Marshal(doc)
}

// FindByID returns a document of a collection.
func (e *Engine) FindByID(ctx context.Context, collection string, id content.ID, opts Options) (json.RawMessage, error) {
	raw, err := e.backend.Document(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	doc, err := e.prepare(ctx, raw, e.schema.Collection(collection), opts, opts.Depth)
	if err != nil {
		return nil, fmt.Errorf("%s %d: %w", collection, id, err)
	}
	return json.Marshal(doc)
}

// Find returns the documents of a collection matching q.
func (e *Engine) Find(ctx context.Context, collection string, q Query) (*Result, error) {
	typ := e.schema.Collection(collection)

	raws, err := e.candidates(ctx, collection, q.Where)
	if err != nil {
		return nil, err
	}

	var matched []node
	for _, raw := range raws {
		doc, err := decodeTree(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", collection, err)
		}
		doc = e.localize(doc, typ, q.Options)
		if matches(doc, q.Where) {
			matched = append(matched, doc)
		}
	}

	sortDocs(matched, q.Sort)

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	res := &Result{TotalDocs: len(matched)}
	if len(matched) > limit {
		matched = matched[:limit]
	}

	res.Docs = make([]json.RawMessage, 0, len(matched))
	for _, doc := range matched {
		doc, err = e.expand(ctx, doc, typ, q.Options, q.Depth)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", collection, err)
		}
		data, err := json.Marshal(doc)
		if err != nil {
			return nil, err
		}
		res.Docs = append(res.Docs, data)
	}

	e.logger.Debug("docstore find",
		"collection", collection,
		"matched", res.TotalDocs,
		"returned", len(res.Docs),
		"locale", q.Locale,
		"depth", q.Depth,
	)
	return res, nil
}

// candidates loads the documents a query may match. An id "in" condition
// reads the listed documents directly.
func (e *Engine) candidates(ctx context.Context, collection string, where []Condition) ([]json.RawMessage, error) {
	for _, c := range where {
		if c.Field != "id" || c.Op != OpIn {
			continue
		}
		out := make([]json.RawMessage, 0, len(c.Values))
		seen := make(map[content.ID]bool, len(c.Values))
		for _, v := range c.Values {
			id, err := content.ParseID(v)
			if err != nil || seen[id] {
				continue
			}
			seen[id] = true
			raw, err := e.backend.Document(ctx, collection, id)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			out = append(out, raw)
		}
		return out, nil
	}
	return e.backend.Documents(ctx, collection)
}

func (e *Engine) prepare(ctx context.Context, raw json.RawMessage, typ Type, opts Options, depth int) (node, error) {
	doc, err := decodeTree(raw)
	if err != nil {
		return nil, err
	}
	doc = e.localize(doc, typ, opts)
	return e.expand(ctx, doc, typ, opts, depth)
}

// localize replaces every localized field with its value in the requested
// locale, or the fallback locale when that value is empty.
func (e *Engine) localize(doc node, typ Type, opts Options) node {
	pick := func(v node) (node, error) {
		m, ok := v.(map[string]any)
		if !ok || !e.isLocaleMap(m) {
			return v, nil
		}
		if val := m[string(opts.Locale)]; !isEmpty(val) {
			return val, nil
		}
		if val := m[string(opts.Fallback())]; !isEmpty(val) {
			return val, nil
		}
		return nil, nil
	}
	for _, path := range typ.Localized {
		// pick never fails
		doc, _ = walk(doc, splitPath(path), pick)
	}
	return doc
}

func (e *Engine) isLocaleMap(m map[string]any) bool {
	if len(m) == 0 {
		return false
	}
	for k := range m {
		if !e.schema.HasLocale(k) {
			return false
		}
	}
	return true
}

// expand replaces relationship identifiers with documents while depth
// allows. Identifiers that match no document are left bare.
func (e *Engine) expand(ctx context.Context, doc node, typ Type, opts Options, depth int) (node, error) {
	if depth < 1 {
		return doc, nil
	}
	for _, rel := range typ.Relations {
		target := e.schema.Collection(rel.Collection)
		var populate func(node) (node, error)
		populate = func(v node) (node, error) {
			if arr, ok := v.([]any); ok {
				for i := range arr {
					out, err := populate(arr[i])
					if err != nil {
						return nil, err
					}
					arr[i] = out
				}
				return arr, nil
			}
			id, ok := idOf(v)
			if !ok {
				return v, nil
			}
			raw, err := e.backend.Document(ctx, rel.Collection, id)
			if errors.Is(err, ErrNotFound) {
				return v, nil
			}
			if err != nil {
				return nil, err
			}
			return e.prepare(ctx, raw, target, opts, depth-1)
		}

		var err error
		doc, err = walk(doc, splitPath(rel.Path), populate)
		if err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func matches(doc node, where []Condition) bool {
	for _, c := range where {
		v, _ := lookup(doc, c.Field)
		got := scalarString(v)
		switch c.Op {
		case OpIn:
			if !slices.Contains(c.Values, got) {
				return false
			}
		case OpEquals:
			if len(c.Values) == 0 || c.Values[0] != got {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// sortDocs orders documents by a field, id ascending by default.
func sortDocs(docs []node, sortBy string) {
	field, desc := strings.TrimPrefix(sortBy, "-"), strings.HasPrefix(sortBy, "-")
	if field == "" {
		field = "id"
	}
	slices.SortStableFunc(docs, func(a, b node) int {
		var c int
		if field == "id" {
			ia, _ := docID(a)
			ib, _ := docID(b)
			c = cmp.Compare(ia, ib)
		} else {
			va, _ := lookup(a, field)
			vb, _ := lookup(b, field)
			c = strings.Compare(scalarString(va), scalarString(vb))
		}
		if desc {
			return -c
		}
		return c
	})
}
