// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the aryes-site project.
package testutil

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/olegiv/aryes-site/internal/content"
	"github.com/olegiv/aryes-site/internal/docstore"
	"github.com/olegiv/aryes-site/internal/store"
)

// TestLogger creates a test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestLoggerSilent creates a test logger that only outputs errors.
func TestLoggerSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// TestDB creates a migrated SQLite database that is closed when the test
// ends.
func TestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "aryes-test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

// MemoryStore returns an engine over an in-memory backend seeded with
// fixturesYAML. The backend is returned so tests can add or remove
// documents.
func MemoryStore(t *testing.T, fixturesYAML string) (*docstore.Engine, *docstore.MemoryBackend) {
	t.Helper()

	backend := docstore.NewMemoryBackend()
	seed(t, backend, fixturesYAML)
	return docstore.NewEngine(backend, nil, TestLogger()), backend
}

// SQLiteStore returns an engine over a temporary SQLite database seeded
// with fixturesYAML.
func SQLiteStore(t *testing.T, fixturesYAML string) (*docstore.Engine, *store.Documents) {
	t.Helper()

	docs := store.NewDocuments(TestDB(t))
	seed(t, docs, fixturesYAML)
	return docstore.NewEngine(docs, nil, TestLogger()), docs
}

func seed(t *testing.T, w docstore.Writer, fixturesYAML string) {
	t.Helper()

	fixtures, err := docstore.LoadFixtures(strings.NewReader(fixturesYAML))
	if err != nil {
		t.Fatalf("LoadFixtures: %v", err)
	}
	if err := fixtures.Apply(context.Background(), w); err != nil {
		t.Fatalf("applying fixtures: %v", err)
	}
}

// ShallowStore caps the depth of every read at MaxDepth, which leaves
// deeper relationships as bare identifiers the way a CMS does when the
// requested depth is too small.
type ShallowStore struct {
	docstore.Store
	MaxDepth int
}

func (s ShallowStore) clamp(opts docstore.Options) docstore.Options {
	opts.Depth = min(opts.Depth, s.MaxDepth)
	return opts
}

// FindGlobal implements docstore.Store.
func (s ShallowStore) FindGlobal(ctx context.Context, slug string, opts docstore.Options) (json.RawMessage, error) {
	return s.Store.FindGlobal(ctx, slug, s.clamp(opts))
}

// FindByID implements docstore.Store.
func (s ShallowStore) FindByID(ctx context.Context, collection string, id content.ID, opts docstore.Options) (json.RawMessage, error) {
	return s.Store.FindByID(ctx, collection, id, s.clamp(opts))
}

// Find implements docstore.Store.
func (s ShallowStore) Find(ctx context.Context, collection string, q docstore.Query) (*docstore.Result, error) {
	q.Options = s.clamp(q.Options)
	return s.Store.Find(ctx, collection, q)
}
