package slog

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/searchcheck"
)

// Ensure LoggingFetcher implements searchcheck.Fetcher.
var _ searchcheck.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher and logs every page request. Failed
// requests are logged at warn level with their error code.
type LoggingFetcher struct {
	next   searchcheck.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next searchcheck.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the host, the search
// query if any and the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, rawURL string) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", rawURL}
		if u, perr := url.Parse(rawURL); perr == nil {
			attrs = append(attrs, "host", u.Host)
			if q := u.Query().Get("q"); q != "" {
				attrs = append(attrs, "query", q)
			}
		}
		attrs = append(attrs, "duration", time.Since(begin))

		if err != nil {
			attrs = append(attrs, "code", searchcheck.ErrorCode(err), "err", err)
			f.logger.Warn("fetch failed", attrs...)
			return
		}
		attrs = append(attrs, "bytes", len(html))
		f.logger.Info("fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, rawURL)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
