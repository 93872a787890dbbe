// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"encoding/json"
	"testing"
)

func TestRefUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantZero bool
		wantBare bool
		wantID   ID
	}{
		{"number", `3`, false, true, 3},
		{"numeric string", `"12"`, false, true, 12},
		{"expanded", `{"id": 4, "title": "B", "slug": "b"}`, false, false, 4},
		{"expanded string id", `{"id": "5", "title": "C"}`, false, false, 5},
		{"null", `null`, true, false, 0},
		{"object without id", `{"title": "orphan"}`, true, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Ref[Service]
			if err := json.Unmarshal([]byte(tt.input), &r); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if r.IsZero() != tt.wantZero {
				t.Errorf("IsZero() = %v, want %v", r.IsZero(), tt.wantZero)
			}
			if r.IsBare() != tt.wantBare {
				t.Errorf("IsBare() = %v, want %v", r.IsBare(), tt.wantBare)
			}
			if r.ID() != tt.wantID {
				t.Errorf("ID() = %d, want %d", r.ID(), tt.wantID)
			}
			if !tt.wantZero && !tt.wantBare && r.Doc() == nil {
				t.Error("Doc() = nil for expanded ref")
			}
		})
	}
}

func TestRefUnmarshalInvalid(t *testing.T) {
	var r Ref[Service]
	if err := json.Unmarshal([]byte(`"abc"`), &r); err == nil {
		t.Error("expected error for non-numeric id")
	}
}

func TestRefMarshal(t *testing.T) {
	tests := []struct {
		name string
		ref  Ref[Industry]
		want string
	}{
		{"absent", Ref[Industry]{}, `null`},
		{"bare", Reference[Industry](9), `9`},
		{"expanded", Expanded(Industry{ID: 10, Name: "Health", Slug: "health"}), `{"id":10,"name":"Health","slug":"health","featuredImage":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.ref)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMixedRefArray(t *testing.T) {
	var refs []Ref[Industry]
	input := `[9, {"id": 10, "name": "Health"}, null, "11"]`
	if err := json.Unmarshal([]byte(input), &refs); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if len(refs) != 4 {
		t.Fatalf("len = %d, want 4", len(refs))
	}
	ids := BareIDs(refs)
	if len(ids) != 2 || ids[0] != 9 || ids[1] != 11 {
		t.Errorf("BareIDs = %v, want [9 11]", ids)
	}
	if !AnyBare(refs) {
		t.Error("AnyBare = false, want true")
	}
	if AnyBare(refs[1:3]) {
		t.Error("AnyBare on expanded and absent refs = true, want false")
	}
}

func TestMegaMenuNeedsRefetch(t *testing.T) {
	expanded := MegaMenu{
		ID: 7,
		ServiceCategories: []MegaMenuCategory{{
			Category: Reference[ServiceCategory](1),
			Services: []Ref[Service]{Expanded(Service{ID: 3, Title: "A"})},
		}},
		Industries: []Ref[Industry]{Expanded(Industry{ID: 9, Name: "Fintech"})},
	}
	if expanded.NeedsRefetch() {
		t.Error("NeedsRefetch() = true for expanded members")
	}

	staleServices := expanded
	staleServices.ServiceCategories = []MegaMenuCategory{{
		Services: []Ref[Service]{Expanded(Service{ID: 3}), Reference[Service](4)},
	}}
	if !staleServices.NeedsRefetch() {
		t.Error("NeedsRefetch() = false with a bare service")
	}

	staleIndustries := expanded
	staleIndustries.Industries = []Ref[Industry]{Reference[Industry](9)}
	if !staleIndustries.NeedsRefetch() {
		t.Error("NeedsRefetch() = false with a bare industry")
	}
}

func TestRichTextUnmarshal(t *testing.T) {
	var rt RichText
	if err := json.Unmarshal([]byte(`{"root":{"type":"root","children":[]}}`), &rt); err != nil {
		t.Fatalf("Unmarshal state: %v", err)
	}
	if len(rt.State) == 0 {
		t.Fatal("State is empty")
	}

	rt.HTML = "<p>x</p>"
	data, err := json.Marshal(rt)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var back RichText
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal rendered: %v", err)
	}
	if back.HTML != "<p>x</p>" || len(back.State) == 0 {
		t.Errorf("rendered value lost: %+v", back)
	}
}
