package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/searchcheck"
)

// Ensure LoggingConfigLoader implements searchcheck.ConfigLoader.
var _ searchcheck.ConfigLoader = (*LoggingConfigLoader)(nil)

// LoggingConfigLoader wraps a ConfigLoader with debug logging.
type LoggingConfigLoader struct {
	next   searchcheck.ConfigLoader
	logger *slog.Logger
}

// NewLoggingConfigLoader creates a new LoggingConfigLoader.
func NewLoggingConfigLoader(next searchcheck.ConfigLoader, logger *slog.Logger) *LoggingConfigLoader {
	return &LoggingConfigLoader{next: next, logger: logger}
}

// LoadConfig delegates to the wrapped loader and logs the operation.
func (l *LoggingConfigLoader) LoadConfig(ctx context.Context, path string) (cfg *searchcheck.SiteConfig, err error) {
	defer func(begin time.Time) {
		var files, categories int
		if cfg != nil {
			files = len(cfg.AllFiles)
			categories = len(cfg.Categories)
		}
		l.logger.Info("load config",
			"path", path,
			"files", files,
			"categories", categories,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.LoadConfig(ctx, path)
}

// Ensure LoggingSourceReader implements searchcheck.SourceReader.
var _ searchcheck.SourceReader = (*LoggingSourceReader)(nil)

// LoggingSourceReader wraps a SourceReader with debug logging.
type LoggingSourceReader struct {
	next   searchcheck.SourceReader
	logger *slog.Logger
}

// NewLoggingSourceReader creates a new LoggingSourceReader.
func NewLoggingSourceReader(next searchcheck.SourceReader, logger *slog.Logger) *LoggingSourceReader {
	return &LoggingSourceReader{next: next, logger: logger}
}

// ReadSource delegates to the wrapped reader and logs the operation.
func (r *LoggingSourceReader) ReadSource(ctx context.Context, path string) (content string, err error) {
	defer func(begin time.Time) {
		r.logger.Info("read source",
			"path", path,
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.ReadSource(ctx, path)
}
