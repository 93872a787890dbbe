// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package resolver hydrates relationship fields that the content store left
// as bare identifiers.
package resolver

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/aryes-site/internal/content"
	"github.com/olegiv/aryes-site/internal/docstore"
)

// Scope is the locale and depth used for follow-up reads.
type Scope struct {
	Locale content.Locale
	Depth  int
}

func (s Scope) options() docstore.Options {
	return docstore.Options{Locale: s.Locale, Depth: s.Depth}
}

// Path resolves a declared child path of an already resolved document.
// It runs after the document itself is available and may modify it.
type Path[T any] func(ctx context.Context, doc *T) error

// Resolver issues the follow-up reads. It holds no per-request state
// besides a round trip counter and can be shared.
type Resolver struct {
	store  docstore.Store
	logger *slog.Logger
	trips  atomic.Int64
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// New creates a resolver over store.
func New(store docstore.Store, opts ...Option) *Resolver {
	r := &Resolver{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RoundTrips returns the number of store reads issued so far.
func (r *Resolver) RoundTrips() int64 {
	return r.trips.Load()
}

// One resolves a single relationship. An absent relationship or a bare
// identifier with no matching document yields nil. Child paths run on the
// resolved document in order.
func One[T content.Document](ctx context.Context, r *Resolver, scope Scope, collection string, ref content.Ref[T], then ...Path[T]) (*T, error) {
	var doc *T
	switch {
	case ref.IsExpanded():
		d := *ref.Doc()
		doc = &d
	case ref.IsBare():
		r.trips.Add(1)
		fetched, err := docstore.ByID[T](ctx, r.store, collection, ref.ID(), scope.options())
		if errors.Is(err, docstore.ErrNotFound) {
			r.logger.Debug("dropping dangling reference", "collection", collection, "id", ref.ID())
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		doc = fetched
	default:
		return nil, nil
	}

	for _, path := range then {
		if err := path(ctx, doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// Many resolves a relationship array. Expanded members are kept, bare
// members are fetched with a single batched query, and the result keeps the
// input order. Identifiers with no matching document are dropped. Child
// paths run concurrently across members. The result is never nil.
func Many[T content.Document](ctx context.Context, r *Resolver, scope Scope, collection string, refs []content.Ref[T], then ...Path[T]) ([]T, error) {
	fetched, err := fetchBare(ctx, r, scope, collection, refs)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(refs))
	dropped := 0
	for _, ref := range refs {
		switch {
		case ref.IsExpanded():
			out = append(out, *ref.Doc())
		case ref.IsBare():
			if doc, ok := fetched[ref.ID()]; ok {
				out = append(out, doc)
			} else {
				dropped++
			}
		}
	}
	if dropped > 0 {
		r.logger.Debug("dropping dangling references", "collection", collection, "count", dropped)
	}

	if len(then) == 0 || len(out) == 0 {
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range out {
		g.Go(func() error {
			for _, path := range then {
				if err := path(gctx, &out[i]); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// fetchBare loads the bare members of refs with one query.
func fetchBare[T content.Document](ctx context.Context, r *Resolver, scope Scope, collection string, refs []content.Ref[T]) (map[content.ID]T, error) {
	ids := unique(content.BareIDs(refs))
	if len(ids) == 0 {
		return nil, nil
	}

	r.trips.Add(1)
	docs, err := docstore.FindAll[T](ctx, r.store, collection, docstore.Query{
		Options: scope.options(),
		Where:   []docstore.Condition{docstore.IDIn(ids...)},
		Limit:   len(ids),
	})
	if err != nil {
		return nil, err
	}

	byID := make(map[content.ID]T, len(docs))
	for _, doc := range docs {
		byID[doc.DocumentID()] = doc
	}
	return byID, nil
}

func unique(ids []content.ID) []content.ID {
	seen := make(map[content.ID]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
