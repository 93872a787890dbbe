// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import "testing"

func TestLocalizedHref(t *testing.T) {
	tests := []struct {
		locale Locale
		href   string
		want   string
	}{
		{LocaleEN, "/advisory", "/en/advisory"},
		{LocaleFR, "/", "/fr"},
		{LocaleFR, "", "/fr"},
		{LocaleEN, "https://linkedin.com/company/aryes", "https://linkedin.com/company/aryes"},
		{LocaleEN, "#contact", "#contact"},
		{LocaleEN, "//cdn.example.com/x", "//cdn.example.com/x"},
	}

	for _, tt := range tests {
		if got := LocalizedHref(tt.locale, tt.href); got != tt.want {
			t.Errorf("LocalizedHref(%q, %q) = %q, want %q", tt.locale, tt.href, got, tt.want)
		}
	}
}

func TestMegaMenuHrefs(t *testing.T) {
	m := MegaMenu{}
	if got := m.ServiceHref(LocaleEN, "/advisory", "cloud"); got != "/en/advisory/services/cloud" {
		t.Errorf("ServiceHref default = %q", got)
	}
	if got := m.IndustryHref(LocaleFR, "/advisory/", "fintech"); got != "/fr/advisory/industries/fintech" {
		t.Errorf("IndustryHref default = %q", got)
	}

	m.ServicesURLPathSegment = "expertise"
	m.IndustriesURLPathSegment = "/sectors/"
	if got := m.ServiceHref(LocaleEN, "/advisory", "cloud"); got != "/en/advisory/expertise/cloud" {
		t.Errorf("ServiceHref custom = %q", got)
	}
	if got := m.IndustryHref(LocaleEN, "/advisory", "health"); got != "/en/advisory/sectors/health" {
		t.Errorf("IndustryHref custom = %q", got)
	}
}

func TestSwitchLocalePath(t *testing.T) {
	tests := []struct {
		path     string
		from, to Locale
		want     string
	}{
		{"/en/advisory", LocaleEN, LocaleFR, "/fr/advisory"},
		{"/en", LocaleEN, LocaleFR, "/fr"},
		{"/fr/", LocaleFR, LocaleEN, "/en"},
		{"/english-page", LocaleEN, LocaleFR, "/fr"},
		{"", LocaleFR, LocaleEN, "/en"},
	}

	for _, tt := range tests {
		if got := SwitchLocalePath(tt.path, tt.from, tt.to); got != tt.want {
			t.Errorf("SwitchLocalePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestTeamMemberProfileHref(t *testing.T) {
	if got := (TeamMember{}).ProfileHref(); got != DefaultTeamMemberHref {
		t.Errorf("ProfileHref() = %q, want %q", got, DefaultTeamMemberHref)
	}
	if got := (TeamMember{Href: "/about/jane"}).ProfileHref(); got != "/about/jane" {
		t.Errorf("ProfileHref() = %q", got)
	}
}
