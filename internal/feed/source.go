package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/JonMunkholm/portfolio/internal/projects"
)

// DefaultLocation is used when no source is configured. It names the document
// embedded in the binary, so an unconfigured server still loads.
const DefaultLocation = BundledScheme + ":data/projects.csv"

// BundledScheme selects the embedded document.
const BundledScheme = "bundled"

// Source produces the raw bytes of a projects CSV document.
type Source interface {
	// Fetch opens the document. The caller closes the returned reader.
	Fetch(ctx context.Context) (io.ReadCloser, error)

	// Location describes where the document comes from, for logs and status.
	Location() string
}

// StatusError is returned when a remote source answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// HTTPSource fetches the document over HTTP(S).
// Every request bypasses caches so edits to the document show up on the next load.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// NewHTTPSource creates an HTTPSource. A nil client gets a default one with
// no overall timeout; cycles bound fetches through their context instead.
func NewHTTPSource(rawURL string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				MaxIdleConns:          4,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 30 * time.Second,
			},
		}
	}
	return &HTTPSource{URL: rawURL, Client: client}
}

// Fetch issues one GET request. There are no retries.
func (s *HTTPSource) Fetch(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.URL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		resp.Body.Close()
		return nil, &StatusError{URL: s.URL, StatusCode: resp.StatusCode}
	}

	return resp.Body, nil
}

func (s *HTTPSource) Location() string { return s.URL }

// FileSource reads the document from the local filesystem.
type FileSource struct {
	Path string
}

// Fetch opens the file. A cancelled context fails before touching the disk.
func (s *FileSource) Fetch(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	return f, nil
}

func (s *FileSource) Location() string { return s.Path }

// BundledSource serves the document embedded in the binary.
type BundledSource struct {
	Name string
}

func (s *BundledSource) Fetch(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return io.NopCloser(strings.NewReader(projects.BundledCSV())), nil
}

func (s *BundledSource) Location() string { return BundledScheme + ":" + s.Name }

// NewSource picks a Source for location:
//
//	http://..., https://...    -> HTTPSource
//	file:///path               -> FileSource
//	bundled:data/projects.csv  -> BundledSource
//	anything without scheme    -> FileSource (relative paths allowed)
//
// An empty location falls back to DefaultLocation.
func NewSource(location string, client *http.Client) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		location = DefaultLocation
	}

	// Windows drive letters parse as a one-letter scheme; treat them as paths
	if len(location) > 1 && location[1] == ':' {
		return &FileSource{Path: location}, nil
	}

	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnsupportedSource, location, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		if u.Host == "" {
			return nil, fmt.Errorf("%w: %q has no host", ErrUnsupportedSource, location)
		}
		return NewHTTPSource(location, client), nil
	case "file":
		if u.Path == "" {
			return nil, fmt.Errorf("%w: %q has no path", ErrUnsupportedSource, location)
		}
		return &FileSource{Path: u.Path}, nil
	case BundledScheme:
		return &BundledSource{Name: u.Opaque}, nil
	case "":
		return &FileSource{Path: location}, nil
	default:
		return nil, fmt.Errorf("%w: scheme %q", ErrUnsupportedSource, u.Scheme)
	}
}
