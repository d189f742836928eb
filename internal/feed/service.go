package feed

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/portfolio/internal/logging"
	"github.com/JonMunkholm/portfolio/internal/projects"
)

// Options configures a Service.
type Options struct {
	Load LoadOptions

	// FetchTimeout bounds each cycle. Zero means no timeout.
	FetchTimeout time.Duration

	// Metrics receives cycle metrics. Nil disables them.
	Metrics *Metrics
}

// Service runs load cycles against one Source and applies them to a Store.
type Service struct {
	src   Source
	store *Store
	opts  Options

	inFlight atomic.Bool
}

// NewService creates a Service. The store should already hold the fallback set.
func NewService(src Source, store *Store, opts Options) *Service {
	s := &Service{
		src:   src,
		store: store,
		opts:  opts,
	}
	s.opts.Metrics.SetRecords(store.Len())
	return s
}

// Store returns the store the service applies results to.
func (s *Service) Store() *Store {
	return s.store
}

// Source returns the configured source.
func (s *Service) Source() Source {
	return s.src
}

// Projects returns a copy of the records currently served.
func (s *Service) Projects() []projects.Project {
	return s.store.Snapshot()
}

// Loading reports whether a cycle is running.
func (s *Service) Loading() bool {
	return s.inFlight.Load()
}

// Status returns the store status plus whether a cycle is running.
func (s *Service) Status() Status {
	st := s.store.Status()
	if st.Location == "" {
		st.Location = s.src.Location()
	}
	st.Loading = s.Loading()
	return st
}

// Refresh runs one load cycle and applies its outcome.
//
// Only one cycle runs at a time; a concurrent call returns ErrLoadInFlight
// without touching the source. If ctx is cancelled before the outcome can be
// applied, the outcome is dropped and the error wraps ErrLoadDiscarded.
// A Failed outcome is applied (the previous records stay) and returned with
// a nil error: the failure is part of the result, not a Refresh error.
func (s *Service) Refresh(ctx context.Context) (Outcome, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.opts.Metrics.RecordRejected()
		return nil, ErrLoadInFlight
	}
	defer s.inFlight.Store(false)

	loadID := uuid.NewString()
	ctx = logging.WithLoadID(ctx, loadID)
	logger := logging.WithFields(ctx, "source", s.src.Location())

	loadCtx := ctx
	if s.opts.FetchTimeout > 0 {
		var cancel context.CancelFunc
		loadCtx, cancel = context.WithTimeout(ctx, s.opts.FetchTimeout)
		defer cancel()
	}

	logger.Debug("load started")
	start := time.Now()

	outcome := Load(loadCtx, s.src, s.opts.Load)
	elapsed := time.Since(start)

	if err := ctx.Err(); err != nil {
		s.opts.Metrics.RecordCycle("discarded", elapsed)
		logger.Info("load discarded", "reason", err, "duration_ms", elapsed.Milliseconds())
		return outcome, fmt.Errorf("%w: %w", ErrLoadDiscarded, err)
	}

	applied := s.store.Apply(s.src.Location(), outcome)
	s.opts.Metrics.RecordCycle(OutcomeLabel(outcome), elapsed)
	s.opts.Metrics.SetRecords(s.store.Len())

	switch o := outcome.(type) {
	case Loaded:
		if applied {
			s.opts.Metrics.MarkSuccess(time.Now())
		}
		logger.Info("load completed",
			"records", len(o.Records),
			"duration_ms", elapsed.Milliseconds(),
		)
	case Failed:
		msg := MapError(o.Err)
		logger.Warn("load failed, keeping previous records",
			"error", o.Err,
			"code", msg.Code,
			"records_kept", s.store.Len(),
			"duration_ms", elapsed.Milliseconds(),
		)
	}

	return outcome, nil
}

// WaitIdle blocks until no cycle is running or ctx is done.
// Used during shutdown so an in-flight load is not cut off mid-apply.
func (s *Service) WaitIdle(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if !s.Loading() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
