// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs background jobs, such as the sitemap refresh, on
// cron schedules.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// ErrUnknownJob is returned by Trigger for a name that was never registered.
var ErrUnknownJob = errors.New("unknown job")

// JobFunc is the body of a job. The context is cancelled when the job
// exceeds its timeout or the scheduler stops.
type JobFunc func(ctx context.Context) error

// JobInfo is the public view of a registered job.
type JobInfo struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Schedule    string    `json:"schedule"`
	LastRun     time.Time `json:"lastRun,omitzero"`
	NextRun     time.Time `json:"nextRun,omitzero"`
	LastError   string    `json:"lastError,omitempty"`
}

type job struct {
	name        string
	description string
	schedule    string
	fn          JobFunc
	entryID     cron.EntryID
	lastRun     time.Time
	lastErr     error
}

// Scheduler runs registered jobs on their cron schedules. A job that is
// still running when its next tick arrives skips that tick.
type Scheduler struct {
	cron    *cron.Cron
	logger  *slog.Logger
	timeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.RWMutex
	jobs map[string]*job
}

// DefaultJobTimeout bounds a single job run.
const DefaultJobTimeout = 2 * time.Minute

// New creates a scheduler. Jobs run with at most timeout each; zero
// selects DefaultJobTimeout.
func New(logger *slog.Logger, timeout time.Duration) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = DefaultJobTimeout
	}
	cl := cronLogger{logger: logger.With("component", "scheduler")}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger:  logger,
		timeout: timeout,
		ctx:     ctx,
		cancel:  cancel,
		jobs:    make(map[string]*job),
	}
}

// Register adds a job. schedule is a standard five field cron expression
// or a descriptor such as "@every 15m" or "@hourly".
func (s *Scheduler) Register(name, description, schedule string, fn JobFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %q already registered", name)
	}

	j := &job{name: name, description: description, schedule: schedule, fn: fn}
	id, err := s.cron.AddFunc(schedule, func() { s.run(j) })
	if err != nil {
		return fmt.Errorf("invalid schedule %q for job %q: %w", schedule, name, err)
	}
	j.entryID = id
	s.jobs[name] = j
	return nil
}

// Start begins running jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() {
	s.cancel()
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// Trigger runs a job now, outside its schedule, and returns its error.
func (s *Scheduler) Trigger(name string) error {
	s.mu.RLock()
	j, ok := s.jobs[name]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	return s.run(j)
}

func (s *Scheduler) run(j *job) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	start := time.Now()
	err := j.fn(ctx)

	s.mu.Lock()
	j.lastRun = start
	j.lastErr = err
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("job failed", "job", j.name, "error", err, "duration", time.Since(start))
		return err
	}
	s.logger.Debug("job finished", "job", j.name, "duration", time.Since(start))
	return nil
}

// Jobs lists the registered jobs by name.
func (s *Scheduler) Jobs() []JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]JobInfo, 0, len(s.jobs))
	for _, j := range s.jobs {
		info := JobInfo{
			Name:        j.name,
			Description: j.description,
			Schedule:    j.schedule,
			LastRun:     j.lastRun,
			NextRun:     s.cron.Entry(j.entryID).Next,
		}
		if j.lastErr != nil {
			info.LastError = j.lastErr.Error()
		}
		out = append(out, info)
	}
	slices.SortFunc(out, func(a, b JobInfo) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
