package searchcheck

import "context"

// Fetcher retrieves HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch requests the URL and returns the response body.
	// A response other than 200 OK is reported as EUNAVAILABLE.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// HostLimiter paces requests per host.
type HostLimiter interface {
	// Wait blocks until the rate limit allows a request to the host.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}
