// Package source fetches the raw video list resource. It only moves bytes;
// parsing belongs to the playlist package.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	// maxListBytes caps how much of the list resource is read
	maxListBytes = 4 << 20

	defaultTimeout = 10 * time.Second
)

var (
	// ErrEmptyLocation is returned when no list location is configured
	ErrEmptyLocation = errors.New("list location is empty")

	// ErrUnexpectedStatus is returned when the list server answers with a non-2xx status
	ErrUnexpectedStatus = errors.New("unexpected list response status")
)

// Fetcher retrieves the list resource as text
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// New returns a fetcher for location: http(s) URLs are fetched over HTTP,
// anything else (optionally prefixed with file://) is read from disk.
func New(location string, timeout time.Duration) (Fetcher, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, ErrEmptyLocation
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	lower := strings.ToLower(location)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return NewHTTPFetcher(location, &http.Client{Timeout: timeout}), nil
	case strings.HasPrefix(lower, "file://"):
		return NewFileFetcher(location[len("file://"):]), nil
	default:
		return NewFileFetcher(location), nil
	}
}

// HTTPFetcher fetches the list from a URL
type HTTPFetcher struct {
	url    string
	client *http.Client
}

// NewHTTPFetcher creates a fetcher for url using client
func NewHTTPFetcher(url string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &HTTPFetcher{url: url, client: client}
}

// Fetch performs a single GET and returns the body as text
func (f *HTTPFetcher) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build list request: %w", err)
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch list: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxListBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read list body: %w", err)
	}
	return string(body), nil
}

// String returns the fetched URL
func (f *HTTPFetcher) String() string {
	return f.url
}

// FileFetcher reads the list from a local file
type FileFetcher struct {
	path string
}

// NewFileFetcher creates a fetcher reading path
func NewFileFetcher(path string) *FileFetcher {
	return &FileFetcher{path: path}
}

// Fetch reads the whole file
func (f *FileFetcher) Fetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	file, err := os.Open(f.path)
	if err != nil {
		return "", fmt.Errorf("failed to open list file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(file, maxListBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read list file: %w", err)
	}
	return string(body), nil
}

// String returns the file path
func (f *FileFetcher) String() string {
	return f.path
}
