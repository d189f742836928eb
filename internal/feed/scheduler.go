package feed

// scheduler.go drives load cycles in the background.
//
// The first cycle runs immediately so the served list reflects the configured
// source as soon as possible after startup. With a positive interval the cycle
// repeats until the context is cancelled; otherwise the scheduler returns after
// the first cycle. A cycle that is still running when the next tick fires is
// not doubled up: Refresh rejects the overlap and the tick is skipped.

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// StartScheduler runs load cycles until ctx is cancelled.
// It blocks; start it in its own goroutine.
func (s *Service) StartScheduler(ctx context.Context, interval time.Duration) {
	slog.Info("load scheduler started",
		"source", s.src.Location(),
		"interval", interval.String(),
	)

	// Run immediately on startup
	s.runCycle(ctx)

	if interval <= 0 {
		slog.Info("load scheduler finished", "reason", "no refresh interval")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("load scheduler stopped")
			return
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

// runCycle runs one Refresh and logs anything the cycle itself did not.
func (s *Service) runCycle(ctx context.Context) {
	_, err := s.Refresh(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrLoadInFlight):
		slog.Debug("scheduled load skipped", "reason", "load already in progress")
	case errors.Is(err, ErrLoadDiscarded):
		// Shutdown in progress; logged by Refresh
	default:
		slog.Error("scheduled load failed", "error", err)
	}
}
