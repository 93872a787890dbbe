// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package docstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/olegiv/aryes-site/internal/content"
)

// node is a decoded JSON document: map[string]any, []any, json.Number,
// string, bool or nil.
type node = any

func decodeTree(raw json.RawMessage) (node, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var n node
	if err := dec.Decode(&n); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return n, nil
}

func splitPath(path string) []string {
	return strings.Split(path, ".")
}

// walk applies fn to every value found at segs below n and stores the
// returned value in place. Missing keys are skipped.
func walk(n node, segs []string, fn func(node) (node, error)) (node, error) {
	if len(segs) == 0 {
		return fn(n)
	}
	switch v := n.(type) {
	case map[string]any:
		child, ok := v[segs[0]]
		if !ok {
			return n, nil
		}
		out, err := walk(child, segs[1:], fn)
		if err != nil {
			return nil, err
		}
		v[segs[0]] = out
	case []any:
		if segs[0] != "*" {
			return n, nil
		}
		for i := range v {
			out, err := walk(v[i], segs[1:], fn)
			if err != nil {
				return nil, err
			}
			v[i] = out
		}
	}
	return n, nil
}

// lookup returns the value at a dotted path, without array stepping.
func lookup(n node, path string) (node, bool) {
	for _, seg := range splitPath(path) {
		m, ok := n.(map[string]any)
		if !ok {
			return nil, false
		}
		n, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return n, true
}

// idOf extracts a document identifier from a bare reference value.
func idOf(n node) (content.ID, bool) {
	switch v := n.(type) {
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return content.ID(i), true
	case string:
		id, err := content.ParseID(v)
		return id, err == nil
	case float64:
		return content.ID(v), true
	}
	return 0, false
}

// docID returns the "id" field of a document.
func docID(n node) (content.ID, bool) {
	m, ok := n.(map[string]any)
	if !ok {
		return 0, false
	}
	return idOf(m["id"])
}

// scalarString renders a scalar field for where clause comparison.
func scalarString(n node) string {
	switch v := n.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(v)
	}
}

func isEmpty(n node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case string:
		return v == ""
	}
	return false
}
