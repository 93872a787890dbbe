// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/olegiv/aryes-site/internal/cache"
	"github.com/olegiv/aryes-site/internal/docstore"
	"github.com/olegiv/aryes-site/internal/scheduler"
	"github.com/olegiv/aryes-site/internal/version"
)

// Check statuses.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// pingTimeout bounds each dependency check.
const pingTimeout = 3 * time.Second

// JobLister reports the background jobs.
type JobLister interface {
	Jobs() []scheduler.JobInfo
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	store     docstore.Store
	cache     cache.Cacher
	jobs      JobLister
	version   version.Info
	schema    func(context.Context) (int64, error)
	verbose   bool
	startTime time.Time
}

// HealthOptions configures a HealthHandler.
type HealthOptions struct {
	Store   docstore.Store
	Cache   cache.Cacher
	Jobs    JobLister // optional
	Version version.Info
	// SchemaVersion reports the applied migration version. Optional; the
	// memory store has no migrations.
	SchemaVersion func(context.Context) (int64, error)
	// Verbose includes check messages and allows ?verbose=true system info.
	// Enabled in development only, since messages can carry hostnames.
	Verbose bool
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(opts HealthOptions) *HealthHandler {
	return &HealthHandler{
		store:     opts.Store,
		cache:     opts.Cache,
		jobs:      opts.Jobs,
		version:   opts.Version,
		schema:    opts.SchemaVersion,
		verbose:   opts.Verbose,
		startTime: time.Now(),
	}
}

// HealthStatus represents the overall health status.
type HealthStatus struct {
	Status    string              `json:"status"`
	Timestamp time.Time           `json:"timestamp"`
	Uptime    string              `json:"uptime"`
	Version   string              `json:"version"`
	Checks    map[string]Check    `json:"checks"`
	Cache     *cache.Stats        `json:"cache,omitempty"`
	Jobs      []scheduler.JobInfo `json:"jobs,omitempty"`
	System    *SystemInfo         `json:"system,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo contains system-level information.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutines"`
	NumCPU       int    `json:"num_cpus"`
	MemAlloc     string `json:"mem_alloc"`
	MemSys       string `json:"mem_sys"`
	// SchemaVersion is zero when unknown.
	SchemaVersion int64 `json:"schema_version,omitempty"`
}

// Health handles GET /health. The content store is required; a failing
// cache only degrades the site, since the sitemap can be rebuilt.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	storeCheck := h.checkStore(r.Context())
	cacheCheck := h.checkCache(r.Context())

	status := HealthStatus{
		Status:    StatusHealthy,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version.Version,
		Checks: map[string]Check{
			"store": storeCheck,
			"cache": cacheCheck,
		},
	}

	code := http.StatusOK
	switch {
	case storeCheck.Status != StatusHealthy:
		status.Status = StatusUnhealthy
		code = http.StatusServiceUnavailable
	case cacheCheck.Status != StatusHealthy:
		status.Status = StatusDegraded
	}

	if sp, ok := h.cache.(cache.StatsProvider); ok {
		stats := sp.Stats()
		status.Cache = &stats
	}
	if h.jobs != nil {
		status.Jobs = h.jobs.Jobs()
	}
	if !h.verbose {
		for name, c := range status.Checks {
			c.Message = ""
			status.Checks[name] = c
		}
	} else if r.URL.Query().Get("verbose") == "true" {
		status.System = systemInfo()
		if h.schema != nil {
			if v, err := h.schema(r.Context()); err == nil {
				status.System.SchemaVersion = v
			}
		}
	}

	writeJSON(w, code, status)
}

// Live handles GET /health/live - simple liveness check.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Ready handles GET /health/ready - checks if the content store answers.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	check := h.checkStore(r.Context())
	if check.Status == StatusHealthy {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
		return
	}

	resp := map[string]string{"status": "not_ready"}
	if h.verbose {
		resp["message"] = check.Message
	}
	writeJSON(w, http.StatusServiceUnavailable, resp)
}

func (h *HealthHandler) checkStore(ctx context.Context) Check {
	p, ok := h.store.(docstore.Pinger)
	if !ok {
		return Check{Status: StatusHealthy, Message: "No ping support"}
	}
	return ping(ctx, p.Ping)
}

func (h *HealthHandler) checkCache(ctx context.Context) Check {
	p, ok := h.cache.(cache.Pinger)
	if !ok {
		return Check{Status: StatusHealthy, Message: "In-process cache"}
	}
	return ping(ctx, p.Ping)
}

func ping(ctx context.Context, fn func(context.Context) error) Check {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := time.Now()
	err := fn(ctx)
	latency := time.Since(start)

	if err != nil {
		return Check{
			Status:  StatusUnhealthy,
			Message: err.Error(),
			Latency: latency.String(),
		}
	}
	return Check{
		Status:  StatusHealthy,
		Message: "Connected",
		Latency: latency.String(),
	}
}

// systemInfo returns system-level metrics.
func systemInfo() *SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &SystemInfo{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     formatBytes(m.Alloc),
		MemSys:       formatBytes(m.Sys),
	}
}

// formatBytes converts bytes to a human-readable string.
func formatBytes(bytes uint64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
