// Package http provides an HTTP-based implementation of searchcheck.Fetcher
// used to probe the development server and load search-results pages.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/searchcheck"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = searchcheck.DefaultTimeout

// Ensure Fetcher implements searchcheck.Fetcher at compile time.
var _ searchcheck.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves content from URLs using plain HTTP requests.
// It does not execute JavaScript; use rod.Fetcher for rendered pages.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (5s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithClient sets the underlying HTTP client. The client's timeout is
// replaced by the fetcher's timeout.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{}
	}
	f.client.Timeout = f.timeout

	return f
}

// Fetch retrieves the body of the given URL.
// Any status other than 200 OK is returned as an EUNAVAILABLE error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", searchcheck.Errorf(searchcheck.EINVALID, "invalid url %q: %v", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", searchcheck.Errorf(searchcheck.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases idle connections held by the client.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
