package feed

import (
	"sync"
	"time"

	"github.com/JonMunkholm/portfolio/internal/projects"
)

// Origin tells where the current record set came from.
type Origin string

const (
	OriginBundled Origin = "bundled"
	OriginRemote  Origin = "remote"
)

// Status is a point-in-time view of the Store for monitoring.
type Status struct {
	Origin      Origin       `json:"origin"`
	Location    string       `json:"location"`
	Records     int          `json:"records"`
	Loading     bool         `json:"loading"`
	LastSuccess *time.Time   `json:"lastSuccess,omitempty"`
	LastFailure *time.Time   `json:"lastFailure,omitempty"`
	LastError   *UserMessage `json:"lastError,omitempty"`
}

// Store holds the record set served to readers.
//
// The set is swapped whole: Apply replaces it only on Loaded, and a Failed
// outcome keeps whatever was there before. Snapshot hands out copies so
// callers can never mutate what other readers see.
type Store struct {
	now func() time.Time

	mu          sync.RWMutex
	records     []projects.Project
	origin      Origin
	location    string
	lastSuccess time.Time
	lastFailure time.Time
	lastErr     error
}

// NewStore creates a Store seeded with fallback, usually projects.Bundled().
func NewStore(fallback []projects.Project) *Store {
	return &Store{
		now:     time.Now,
		records: projects.Clone(fallback),
		origin:  OriginBundled,
	}
}

// Apply records the outcome of a load from location.
// It reports whether the record set was replaced.
func (s *Store) Apply(location string, o Outcome) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch o := o.(type) {
	case Loaded:
		if len(o.Records) == 0 {
			s.lastFailure = s.now()
			s.lastErr = ErrNoRecords
			return false
		}
		s.records = projects.Clone(o.Records)
		s.origin = OriginRemote
		s.location = location
		s.lastSuccess = s.now()
		s.lastErr = nil
		return true
	case Failed:
		s.lastFailure = s.now()
		s.lastErr = o.Err
		return false
	default:
		return false
	}
}

// Snapshot returns a copy of the current record set.
func (s *Store) Snapshot() []projects.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return projects.Clone(s.records)
}

// Len returns the number of records currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// LastError returns the error of the most recent failed load,
// or nil if the latest load succeeded or none has failed.
func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Status returns the current store state.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{
		Origin:   s.origin,
		Location: s.location,
		Records:  len(s.records),
	}
	if !s.lastSuccess.IsZero() {
		t := s.lastSuccess
		st.LastSuccess = &t
	}
	if !s.lastFailure.IsZero() {
		t := s.lastFailure
		st.LastFailure = &t
	}
	if s.lastErr != nil {
		msg := MapError(s.lastErr)
		st.LastError = &msg
	}
	return st
}
