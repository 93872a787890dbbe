// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package docstore

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/olegiv/aryes-site/internal/content"
)

// Writer accepts raw documents. It is implemented by backends that can be
// seeded from fixtures.
type Writer interface {
	PutGlobal(ctx context.Context, slug string, doc any) error
	Put(ctx context.Context, collection string, doc any) error
}

// MemoryBackend keeps documents in memory.
type MemoryBackend struct {
	mu      sync.RWMutex
	globals map[string]json.RawMessage
	docs    map[string]map[content.ID]json.RawMessage
}

// NewMemoryBackend creates an empty backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		globals: make(map[string]json.RawMessage),
		docs:    make(map[string]map[content.ID]json.RawMessage),
	}
}

// PutGlobal stores a global, replacing any previous value.
func (m *MemoryBackend) PutGlobal(_ context.Context, slug string, doc any) error {
	raw, err := marshalDoc(doc)
	if err != nil {
		return fmt.Errorf("global %s: %w", slug, err)
	}
	m.mu.Lock()
	m.globals[slug] = raw
	m.mu.Unlock()
	return nil
}

// Put stores a collection document. The document must carry an id.
func (m *MemoryBackend) Put(_ context.Context, collection string, doc any) error {
	raw, err := marshalDoc(doc)
	if err != nil {
		return fmt.Errorf("%s: %w", collection, err)
	}
	id, err := RawID(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", collection, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.docs[collection] == nil {
		m.docs[collection] = make(map[content.ID]json.RawMessage)
	}
	m.docs[collection][id] = raw
	return nil
}

// DeleteGlobal removes a global.
func (m *MemoryBackend) DeleteGlobal(slug string) {
	m.mu.Lock()
	delete(m.globals, slug)
	m.mu.Unlock()
}

// Delete removes a collection document.
func (m *MemoryBackend) Delete(collection string, id content.ID) {
	m.mu.Lock()
	delete(m.docs[collection], id)
	m.mu.Unlock()
}

// Global implements Backend.
func (m *MemoryBackend) Global(_ context.Context, slug string) (json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.globals[slug]
	if !ok {
		return nil, ErrNotFound
	}
	return raw, nil
}

// Document implements Backend.
func (m *MemoryBackend) Document(_ context.Context, collection string, id content.ID) (json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.docs[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return raw, nil
}

// Documents implements Backend. Documents are returned in id order.
func (m *MemoryBackend) Documents(_ context.Context, collection string) ([]json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	docs := m.docs[collection]
	ids := slices.SortedFunc(maps.Keys(docs), cmp.Compare[content.ID])
	out := make([]json.RawMessage, 0, len(ids))
	for _, id := range ids {
		out = append(out, docs[id])
	}
	return out, nil
}

// RawID reads the id field of a raw document.
func RawID(raw json.RawMessage) (content.ID, error) {
	var idOnly struct {
		ID content.ID `json:"id"`
	}
	if err := json.Unmarshal(raw, &idOnly); err != nil {
		return 0, err
	}
	if idOnly.ID == 0 {
		return 0, errors.New("document has no id")
	}
	return idOnly.ID, nil
}

func marshalDoc(doc any) (json.RawMessage, error) {
	if raw, ok := doc.(json.RawMessage); ok {
		return raw, nil
	}
	return json.Marshal(doc)
}
