// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/olegiv/aryes-site/internal/content"
	"github.com/olegiv/aryes-site/internal/docstore"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Documents is a docstore.Backend over the documents and globals tables.
// Documents are stored as raw JSON with their locale maps intact.
type Documents struct {
	db   DBTX
	conn *sql.DB
	now  func() time.Time
}

var (
	_ docstore.Backend = (*Documents)(nil)
	_ docstore.Writer  = (*Documents)(nil)
	_ docstore.Pinger  = (*Documents)(nil)
)

// NewDocuments creates a backend on a migrated database.
func NewDocuments(db *sql.DB) *Documents {
	return &Documents{db: db, conn: db, now: time.Now}
}

// WithTx returns a copy of d that runs its statements in tx.
func (d *Documents) WithTx(tx *sql.Tx) *Documents {
	return &Documents{db: tx, conn: d.conn, now: d.now}
}

// Global implements docstore.Backend.
func (d *Documents) Global(ctx context.Context, slug string) (json.RawMessage, error) {
	var data string
	err := d.db.QueryRowContext(ctx, `SELECT data FROM globals WHERE slug = ?`, slug).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, docstore.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading global %s: %w", slug, err)
	}
	return json.RawMessage(data), nil
}

// Document implements docstore.Backend.
func (d *Documents) Document(ctx context.Context, collection string, id content.ID) (json.RawMessage, error) {
	var data string
	err := d.db.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE collection = ? AND id = ?`, collection, int64(id),
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, docstore.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s %d: %w", collection, id, err)
	}
	return json.RawMessage(data), nil
}

// Documents implements docstore.Backend. Documents are returned in id order.
func (d *Documents) Documents(ctx context.Context, collection string) ([]json.RawMessage, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT data FROM documents WHERE collection = ? ORDER BY id`, collection)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", collection, err)
	}
	defer func() { _ = rows.Close() }()

	var out []json.RawMessage
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", collection, err)
		}
		out = append(out, json.RawMessage(data))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing %s: %w", collection, err)
	}
	return out, nil
}

// PutGlobal implements docstore.Writer.
func (d *Documents) PutGlobal(ctx context.Context, slug string, doc any) error {
	data, err := marshal(doc)
	if err != nil {
		return fmt.Errorf("global %s: %w", slug, err)
	}
	_, err = d.db.ExecContext(ctx, `
		INSERT INTO globals (slug, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (slug) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		slug, string(data), d.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("writing global %s: %w", slug, err)
	}
	return nil
}

// Put implements docstore.Writer. The document must carry an id.
func (d *Documents) Put(ctx context.Context, collection string, doc any) error {
	data, err := marshal(doc)
	if err != nil {
		return fmt.Errorf("%s: %w", collection, err)
	}
	id, err := docstore.RawID(data)
	if err != nil {
		return fmt.Errorf("%s: %w", collection, err)
	}
	_, err = d.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, data, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (collection, id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		collection, int64(id), string(data), d.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("writing %s %d: %w", collection, id, err)
	}
	return nil
}

// Delete removes a collection document. Deleting a missing document is
// not an error.
func (d *Documents) Delete(ctx context.Context, collection string, id content.ID) error {
	if _, err := d.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND id = ?`, collection, int64(id)); err != nil {
		return fmt.Errorf("deleting %s %d: %w", collection, id, err)
	}
	return nil
}

// LastModified returns the most recent update time of a collection, or
// the zero time when it is empty.
func (d *Documents) LastModified(ctx context.Context, collection string) (time.Time, error) {
	var ts sql.NullString
	err := d.db.QueryRowContext(ctx,
		`SELECT MAX(updated_at) FROM documents WHERE collection = ?`, collection).Scan(&ts)
	if err != nil {
		return time.Time{}, fmt.Errorf("reading %s modification time: %w", collection, err)
	}
	if !ts.Valid || ts.String == "" {
		return time.Time{}, nil
	}
	return parseTimestamp(ts.String)
}

// Counts returns the number of documents per collection.
func (d *Documents) Counts(ctx context.Context) (map[string]int, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT collection, COUNT(*) FROM documents GROUP BY collection`)
	if err != nil {
		return nil, fmt.Errorf("counting documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			collection string
			n          int
		)
		if err := rows.Scan(&collection, &n); err != nil {
			return nil, fmt.Errorf("counting documents: %w", err)
		}
		counts[collection] = n
	}
	return counts, rows.Err()
}

// Ping implements docstore.Pinger.
func (d *Documents) Ping(ctx context.Context) error {
	return d.conn.PingContext(ctx)
}

func marshal(doc any) (json.RawMessage, error) {
	switch v := doc.(type) {
	case json.RawMessage:
		if !json.Valid(v) {
			return nil, errors.New("invalid JSON document")
		}
		return v, nil
	default:
		return json.Marshal(doc)
	}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05",
}

// parseTimestamp reads a DATETIME column aggregated by SQLite, which comes
// back as text in one of the driver's layouts.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
