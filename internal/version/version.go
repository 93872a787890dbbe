// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

import (
	"runtime/debug"
)

// Info contains build-time version information injected via ldflags.
type Info struct {
	Version   string `json:"version"`   // Semantic version from git tags (e.g., "v1.2.3")
	GitCommit string `json:"gitCommit"` // Short git commit hash (e.g., "abc1234")
	BuildTime string `json:"buildTime"` // Build timestamp in RFC3339 format
}

// String formats the version for logs and the -version flag.
func (i Info) String() string {
	s := i.Version
	if i.GitCommit != "" && i.GitCommit != "unknown" {
		s += " (" + i.GitCommit + ")"
	}
	if i.BuildTime != "" && i.BuildTime != "unknown" {
		s += " built " + i.BuildTime
	}
	return s
}

// Resolve fills fields that were not injected at link time from the VCS
// stamp the Go toolchain embeds in the binary.
func Resolve(i Info) Info {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return i
	}
	return fromBuildInfo(i, bi)
}

func fromBuildInfo(i Info, bi *debug.BuildInfo) Info {
	if (i.Version == "" || i.Version == "dev") && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if i.GitCommit == "" || i.GitCommit == "unknown" {
				i.GitCommit = s.Value[:min(7, len(s.Value))]
			}
		case "vcs.time":
			if i.BuildTime == "" || i.BuildTime == "unknown" {
				i.BuildTime = s.Value
			}
		}
	}
	return i
}
