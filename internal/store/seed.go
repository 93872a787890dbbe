// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/olegiv/aryes-site/internal/docstore"
)

// Seed writes fixture documents into the database. Existing documents with
// the same collection and id are replaced, so seeding is repeatable.
func Seed(ctx context.Context, docs *Documents, fixtures *docstore.Fixtures) error {
	globals, documents := fixtures.Count()
	if globals == 0 && documents == 0 {
		slog.Info("no fixtures to seed")
		return nil
	}

	tx, err := docs.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fixtures.Apply(ctx, docs.WithTx(tx)); err != nil {
		return fmt.Errorf("seeding fixtures: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	slog.Info("seeded content fixtures", "globals", globals, "documents", documents)
	return nil
}

// SeedFile loads a YAML fixture file and seeds it.
func SeedFile(ctx context.Context, docs *Documents, path string) error {
	fixtures, err := docstore.LoadFixturesFile(path)
	if err != nil {
		return err
	}
	return Seed(ctx, docs, fixtures)
}
