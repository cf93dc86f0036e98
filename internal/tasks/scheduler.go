package tasks

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ttufts/youtube-smart-playlists/internal/shared"
)

// SweepFunc runs one sweep. [Sweeper.Sweep] satisfies it.
type SweepFunc func(ctx context.Context) (*SweepResult, error)

// Scheduler repeats a sweep forever with a fixed delay between the end of one sweep and the start of the next.
//
// Sweeps never overlap: the loop runs on the caller's goroutine and [Scheduler.RunOnce] refuses re-entry.
type Scheduler struct {
	Interval time.Duration
	// OnResult is called after every sweep, successful or not. Optional.
	OnResult func(*SweepResult, error)

	sweep   SweepFunc
	logger  *log.Logger
	running atomic.Bool
}

// NewScheduler creates a Scheduler running sweep every interval.
func NewScheduler(interval time.Duration, sweep SweepFunc, logger *log.Logger) *Scheduler {
	return &Scheduler{Interval: interval, sweep: sweep, logger: logger}
}

// Running reports whether a sweep is in progress.
func (s *Scheduler) Running() bool {
	return s.running.Load()
}

// RunOnce runs a single sweep, returning [shared.ErrSweepInProgress] if one is already running.
func (s *Scheduler) RunOnce(ctx context.Context) (*SweepResult, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, shared.ErrSweepInProgress
	}
	defer s.running.Store(false)
	return s.sweep(ctx)
}

// Run sweeps immediately and then once per interval until ctx is cancelled.
//
// Sweep errors are logged and the next sweep is scheduled as usual. Run only returns ctx.Err().
func (s *Scheduler) Run(ctx context.Context) error {
	if s.Interval <= 0 {
		return fmt.Errorf("%w: interval must be positive, got %s", shared.ErrInvalidConfig, s.Interval)
	}

	for {
		result, err := s.RunOnce(ctx)
		if err != nil && ctx.Err() == nil {
			s.logger.Error("sweep failed", "err", err)
		}
		if s.OnResult != nil {
			s.OnResult(result, err)
		}

		timer := time.NewTimer(s.Interval)
		s.logger.Debug("next sweep scheduled", "in", s.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
