package rod

import (
	"context"

	"github.com/fwojciec/searchcheck"
	"github.com/go-rod/rod/lib/launcher"
)

// Ensure Browser implements searchcheck.Browser at compile time.
var _ searchcheck.Browser = (*Browser)(nil)

// Browser opens URLs in the operating system's default browser.
type Browser struct {
	open func(url string)
}

// BrowserOption configures a Browser.
type BrowserOption func(*Browser)

// WithOpener replaces the function that hands URLs to the system.
func WithOpener(open func(url string)) BrowserOption {
	return func(b *Browser) {
		b.open = open
	}
}

// NewBrowser creates a Browser backed by the system URL handler.
func NewBrowser(opts ...BrowserOption) *Browser {
	b := &Browser{open: launcher.Open}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Open hands url to the system browser. The launch is fire-and-forget;
// failures of the external launcher are not reported.
func (b *Browser) Open(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if url == "" {
		return searchcheck.Errorf(searchcheck.EINVALID, "url required")
	}
	b.open(url)
	return nil
}
