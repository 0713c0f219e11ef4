// Package rod renders pages in a headless Chrome browser and opens URLs in
// the operator's default browser, using github.com/go-rod/rod.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/searchcheck"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 10 * time.Second

// DefaultRenderDelay gives client-side search time to populate results
// after the load event.
const DefaultRenderDelay = time.Second

// Ensure Fetcher implements searchcheck.Fetcher at compile time.
var _ searchcheck.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser     *rod.Browser
	launcher    *launcher.Launcher
	timeout     time.Duration
	renderDelay time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRenderDelay sets how long to wait after the load event before
// reading the page.
func WithRenderDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.renderDelay = d
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		renderDelay: DefaultRenderDelay,
	}
	for _, opt := range opts {
		opt(f)
	}

	l := launcher.New().
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = l
	return f, nil
}

// Fetch navigates to the URL, waits for scripts to render and returns the
// resulting HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}

	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	if f.renderDelay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.renderDelay):
		}
	}

	return page.HTML()
}

// Close releases browser resources and stops the browser process.
func (f *Fetcher) Close() error {
	err := f.browser.Close()
	f.launcher.Kill()
	return err
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.launcher.PID()
}
