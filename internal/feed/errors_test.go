package feed

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil", nil, ""},
		{"status", fmt.Errorf("load: %w", &StatusError{URL: "https://x", StatusCode: 404}), "SRC001"},
		{"missing file", fmt.Errorf("open source: %w", fs.ErrNotExist), "SRC002"},
		{"refused", errors.New("dial tcp 127.0.0.1:9: connect: connection refused"), "SRC003"},
		{"dns", errors.New("dial tcp: lookup nope.invalid: no such host"), "SRC003"},
		{"deadline", fmt.Errorf("fetch: %w", context.DeadlineExceeded), "SRC004"},
		{"timeout text", errors.New("net/http: TLS handshake timeout"), "SRC004"},
		{"too large", fmt.Errorf("%w: limit is 10 bytes", ErrBodyTooLarge), "SRC005"},
		{"bad source", fmt.Errorf("%w: scheme \"ftp\"", ErrUnsupportedSource), "SRC006"},
		{"no records", ErrNoRecords, "PARSE001"},
		{"charset", fmt.Errorf("%w: \"x\"", ErrUnsupportedCharset), "PARSE002"},
		{"in flight", ErrLoadInFlight, "LOAD001"},
		{"discarded", fmt.Errorf("%w: %w", ErrLoadDiscarded, context.Canceled), "LOAD002"},
		{"canceled", context.Canceled, "LOAD002"},
		{"unknown", errors.New("something odd"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %q, want %q", tt.err, got.Code, tt.wantCode)
			}
			if tt.err != nil && (got.Message == "" || got.Action == "") {
				t.Errorf("MapError(%v) has empty message or action: %+v", tt.err, got)
			}
		})
	}
}

func TestUserMessage_String(t *testing.T) {
	got := MapError(ErrNoRecords).String()
	want := "The projects document has no usable rows. Make sure the header row is present and each row has id, title and summary (Error: PARSE001)"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
