// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"bytes"
	"encoding/json"
)

// RichText is an editor state as stored by the CMS together with its
// rendered HTML. The HTML is filled in by the page services.
type RichText struct {
	State json.RawMessage
	HTML  string
}

type richTextJSON struct {
	State json.RawMessage `json:"state,omitempty"`
	HTML  string          `json:"html,omitempty"`
}

// IsZero reports whether there is no editor state.
func (r RichText) IsZero() bool {
	return len(r.State) == 0 && r.HTML == ""
}

// UnmarshalJSON accepts a raw editor state ({"root": ...}) or a previously
// rendered value ({"state": ..., "html": ...}).
func (r *RichText) UnmarshalJSON(data []byte) error {
	*r = RichText{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	var head map[string]json.RawMessage
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	if _, ok := head["root"]; ok {
		r.State = append(json.RawMessage(nil), data...)
		return nil
	}
	var v richTextJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	r.State, r.HTML = v.State, v.HTML
	return nil
}

// MarshalJSON encodes the state and the rendered HTML.
func (r RichText) MarshalJSON() ([]byte, error) {
	if r.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(richTextJSON{State: r.State, HTML: r.HTML})
}
