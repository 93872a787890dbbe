// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content defines the CMS documents consumed by the site and the
// relationship type that links them.
package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID identifies a document within its collection.
type ID int64

// UnmarshalJSON accepts both numeric and string encoded identifiers.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := ParseID(s)
		if err != nil {
			return err
		}
		*id = v
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("content: invalid id %s", data)
	}
	*id = ID(n)
	return nil
}

// String returns the decimal form of the identifier.
func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseID parses a decimal identifier.
func ParseID(s string) (ID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("content: invalid id %q", s)
	}
	return ID(n), nil
}

// Document is implemented by every collection type that can be the target
// of a relationship.
type Document interface {
	DocumentID() ID
}

// Ref is a relationship field. It holds either a bare reference to a
// document or the expanded document itself. The zero value is an absent
// relationship.
type Ref[T Document] struct {
	id  ID
	doc *T
}

// Reference returns a relationship holding only the identifier.
func Reference[T Document](id ID) Ref[T] {
	return Ref[T]{id: id}
}

// Expanded returns a relationship holding the full document.
func Expanded[T Document](doc T) Ref[T] {
	return Ref[T]{id: doc.DocumentID(), doc: &doc}
}

// IsZero reports whether the relationship is absent.
func (r Ref[T]) IsZero() bool {
	return r.id == 0 && r.doc == nil
}

// IsExpanded reports whether the relationship carries the document.
func (r Ref[T]) IsExpanded() bool {
	return r.doc != nil
}

// IsBare reports whether the relationship carries only an identifier.
func (r Ref[T]) IsBare() bool {
	return r.doc == nil && r.id != 0
}

// ID returns the target identifier for both forms.
func (r Ref[T]) ID() ID {
	return r.id
}

// Doc returns the expanded document, or nil for bare and absent refs.
func (r Ref[T]) Doc() *T {
	return r.doc
}

// UnmarshalJSON decodes a bare id (number or numeric string), an expanded
// document object, or null.
func (r *Ref[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*r = Ref[T]{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '{' {
		var doc T
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}
		// An object without an identifier cannot be matched against a fetch.
		if doc.DocumentID() == 0 {
			return nil
		}
		*r = Expanded(doc)
		return nil
	}
	var id ID
	if err := id.UnmarshalJSON(data); err != nil {
		return err
	}
	r.id = id
	return nil
}

// MarshalJSON encodes the relationship in the same shape it was read in.
func (r Ref[T]) MarshalJSON() ([]byte, error) {
	switch {
	case r.doc != nil:
		return json.Marshal(r.doc)
	case r.id != 0:
		return json.Marshal(int64(r.id))
	default:
		return []byte("null"), nil
	}
}

// BareIDs returns the identifiers of the bare members of refs, in order.
func BareIDs[T Document](refs []Ref[T]) []ID {
	var ids []ID
	for _, r := range refs {
		if r.IsBare() {
			ids = append(ids, r.id)
		}
	}
	return ids
}

// AnyBare reports whether any of refs is a bare identifier.
func AnyBare[T Document](refs []Ref[T]) bool {
	for _, r := range refs {
		if r.IsBare() {
			return true
		}
	}
	return false
}
