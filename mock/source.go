package mock

import (
	"context"

	"github.com/fwojciec/searchcheck"
)

var _ searchcheck.SourceReader = (*SourceReader)(nil)

// SourceReader is a mock implementation of searchcheck.SourceReader.
type SourceReader struct {
	ReadSourceFn func(ctx context.Context, path string) (string, error)
}

func (r *SourceReader) ReadSource(ctx context.Context, path string) (string, error) {
	return r.ReadSourceFn(ctx, path)
}
