// Package scheduler runs the client's named periodic jobs on robfig/cron.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/stockdash/internal/logging"
	"github.com/robfig/cron/v3"
)

// Job names used by the dashboard.
const (
	JobExpiryCheck      = "expiry-check"
	JobDashboardRefresh = "dashboard-refresh"
)

var ErrStopped = errors.New("scheduler stopped")

// Scheduler keeps at most one cron entry per name. A job that is still
// running when its next tick fires is skipped, and a panicking job is
// recovered and logged.
type Scheduler struct {
	cron   *cron.Cron
	logger logging.Logger
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	jobs    map[string]cron.EntryID
	stopped bool
}

func New(logger logging.Logger) *Scheduler {
	cl := cronLogger{logger: logger}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		cron:   cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		jobs:   make(map[string]cron.EntryID),
	}
	s.cron.Start()
	return s
}

// Every schedules fn as "@every interval" under name, replacing any job
// already registered under that name. Intervals are rounded up to one second.
func (s *Scheduler) Every(name string, interval time.Duration, fn func(ctx context.Context)) error {
	if interval <= 0 {
		return fmt.Errorf("job %s: interval must be positive, got %s", name, interval)
	}
	if interval < time.Second {
		interval = time.Second
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return ErrStopped
	}

	if id, ok := s.jobs[name]; ok {
		s.cron.Remove(id)
		delete(s.jobs, name)
	}

	id, err := s.cron.AddFunc("@every "+interval.String(), func() { fn(s.ctx) })
	if err != nil {
		return fmt.Errorf("job %s: %w", name, err)
	}
	s.jobs[name] = id
	s.logger.Debug(s.ctx, "job scheduled", "job", name, "interval", interval)
	return nil
}

// Remove unschedules name. Removing an unknown job is a no-op.
func (s *Scheduler) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.jobs[name]; ok {
		s.cron.Remove(id)
		delete(s.jobs, name)
		s.logger.Debug(s.ctx, "job removed", "job", name)
	}
}

func (s *Scheduler) Has(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.jobs[name]
	return ok
}

// Next returns when name fires next; ok is false for unknown jobs.
func (s *Scheduler) Next(name string) (time.Time, bool) {
	s.mu.Lock()
	id, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return time.Time{}, false
	}
	return s.cron.Entry(id).Next, true
}

// Trigger runs name once on the calling goroutine.
func (s *Scheduler) Trigger(name string) bool {
	s.mu.Lock()
	id, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return false
	}
	e := s.cron.Entry(id)
	if e.WrappedJob == nil {
		return false
	}
	e.WrappedJob.Run()
	return true
}

// Stop removes every job, cancels the context handed to running jobs and
// waits up to timeout for them to return.
func (s *Scheduler) Stop(timeout time.Duration) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	for name, id := range s.jobs {
		s.cron.Remove(id)
		delete(s.jobs, name)
	}
	s.mu.Unlock()

	s.cancel()
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-time.After(timeout):
		s.logger.Warn(context.Background(), "scheduler stop timed out", "timeout", timeout)
	}
}

// cronLogger adapts logging.Logger to cron.Logger.
type cronLogger struct {
	logger logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(context.Background(), "cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(context.Background(), "cron: "+msg, append(keysAndValues, "error", err)...)
}
