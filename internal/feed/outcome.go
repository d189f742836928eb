package feed

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/JonMunkholm/portfolio/internal/projects"
)

// DefaultMaxBytes caps a fetched document at 5MB.
const DefaultMaxBytes int64 = 5 << 20

// Outcome is the result of one load attempt: either Loaded or Failed.
type Outcome interface {
	isOutcome()
}

// Loaded carries the records of a successful load. Records is never empty.
type Loaded struct {
	Records []projects.Project
}

// Failed carries the reason a load produced nothing usable.
type Failed struct {
	Err error
}

func (Loaded) isOutcome() {}
func (Failed) isOutcome() {}

// OutcomeLabel names an outcome for logs and metrics.
func OutcomeLabel(o Outcome) string {
	switch o.(type) {
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// LoadOptions tunes a single load attempt.
type LoadOptions struct {
	Charset  string // document charset (default: utf-8)
	MaxBytes int64  // size limit in raw bytes (default: DefaultMaxBytes)
}

// Load performs one fetch-and-parse attempt against src.
// It never panics and never returns a partial record set.
func Load(ctx context.Context, src Source, opts LoadOptions) Outcome {
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	body, err := src.Fetch(ctx)
	if err != nil {
		return Failed{Err: err}
	}
	defer body.Close()

	raw, err := io.ReadAll(io.LimitReader(body, maxBytes+1))
	if err != nil {
		return Failed{Err: fmt.Errorf("read %s: %w", src.Location(), err)}
	}
	if int64(len(raw)) > maxBytes {
		return Failed{Err: fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, maxBytes)}
	}

	decoded, err := Decode(bytes.NewReader(raw), opts.Charset)
	if err != nil {
		return Failed{Err: err}
	}
	text, err := io.ReadAll(decoded)
	if err != nil {
		return Failed{Err: fmt.Errorf("decode %s: %w", src.Location(), err)}
	}

	records := projects.Parse(string(text))
	if len(records) == 0 {
		return Failed{Err: ErrNoRecords}
	}
	return Loaded{Records: records}
}
