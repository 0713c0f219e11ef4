package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/searchcheck"
)

// Ensure LoggingDocTree implements searchcheck.DocTree.
var _ searchcheck.DocTree = (*LoggingDocTree)(nil)

// LoggingDocTree wraps a DocTree with debug logging.
type LoggingDocTree struct {
	next   searchcheck.DocTree
	logger *slog.Logger
}

// NewLoggingDocTree creates a new LoggingDocTree.
func NewLoggingDocTree(next searchcheck.DocTree, logger *slog.Logger) *LoggingDocTree {
	return &LoggingDocTree{next: next, logger: logger}
}

// ListMarkdown delegates to the wrapped tree and logs the operation.
func (t *LoggingDocTree) ListMarkdown(ctx context.Context) (names []string, err error) {
	defer func(begin time.Time) {
		t.logger.Info("list markdown",
			"count", len(names),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return t.next.ListMarkdown(ctx)
}

// ReadFrontMatter delegates to the wrapped tree. Only failures are logged
// since the audit reads every configured file.
func (t *LoggingDocTree) ReadFrontMatter(ctx context.Context, name string) (*searchcheck.FrontMatter, error) {
	fm, err := t.next.ReadFrontMatter(ctx, name)
	if err != nil {
		t.logger.Debug("read front matter",
			"name", name,
			"code", searchcheck.ErrorCode(err),
			"err", err,
		)
	}
	return fm, err
}
