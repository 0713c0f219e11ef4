package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/searchcheck"
)

// Ensure LoggingResultExtractor implements searchcheck.ResultExtractor.
var _ searchcheck.ResultExtractor = (*LoggingResultExtractor)(nil)

// LoggingResultExtractor wraps a ResultExtractor with debug logging.
type LoggingResultExtractor struct {
	next   searchcheck.ResultExtractor
	logger *slog.Logger
}

// NewLoggingResultExtractor creates a new LoggingResultExtractor.
func NewLoggingResultExtractor(next searchcheck.ResultExtractor, logger *slog.Logger) *LoggingResultExtractor {
	return &LoggingResultExtractor{next: next, logger: logger}
}

// ExtractResults delegates to the wrapped extractor and logs the operation.
func (e *LoggingResultExtractor) ExtractResults(html string) (results []searchcheck.SearchResult, err error) {
	defer func(begin time.Time) {
		nested := 0
		for _, r := range results {
			if r.Nested() {
				nested++
			}
		}
		e.logger.Info("extract results",
			"bytes", len(html),
			"count", len(results),
			"nested", nested,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractResults(html)
}
