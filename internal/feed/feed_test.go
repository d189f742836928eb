package feed

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/JonMunkholm/portfolio/internal/projects"
)

const validCSV = "id,title,summary,stacks,hours\n" +
	"alpha,Alpha,First project,Go|SQL,3\n" +
	"beta,Beta,Second project,Go,4.5\n"

const headerOnlyCSV = "id,title,summary,stacks,hours\n"

// funcSource adapts a function to Source.
type funcSource struct {
	location string
	fetch    func(ctx context.Context) (io.ReadCloser, error)
}

func (s *funcSource) Fetch(ctx context.Context) (io.ReadCloser, error) { return s.fetch(ctx) }
func (s *funcSource) Location() string                                 { return s.location }

// staticSource returns body on every fetch.
func staticSource(body string) *funcSource {
	return &funcSource{
		location: "memory://static",
		fetch: func(context.Context) (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}

// failingSource returns err on every fetch.
func failingSource(err error) *funcSource {
	return &funcSource{
		location: "memory://failing",
		fetch: func(context.Context) (io.ReadCloser, error) {
			return nil, err
		},
	}
}

// blockingSource parks every fetch until release is closed.
type blockingSource struct {
	body    string
	started chan struct{}
	release chan struct{}

	mu    sync.Mutex
	calls int
}

func newBlockingSource(body string) *blockingSource {
	return &blockingSource{
		body:    body,
		started: make(chan struct{}, 8),
		release: make(chan struct{}),
	}
}

func (s *blockingSource) Fetch(ctx context.Context) (io.ReadCloser, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	s.started <- struct{}{}
	select {
	case <-s.release:
		return io.NopCloser(strings.NewReader(s.body)), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *blockingSource) Location() string { return "memory://blocking" }

func (s *blockingSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

var errBoom = errors.New("boom")

// fallbackSet is a small stand-in for the bundled dataset.
func fallbackSet() []projects.Project {
	return []projects.Project{
		{ID: "fallback", Title: "Fallback", Summary: "Bundled entry", Stacks: []string{"Go"}},
	}
}
