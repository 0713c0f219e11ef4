package mock

import (
	"context"

	"github.com/fwojciec/searchcheck"
)

var _ searchcheck.DocTree = (*DocTree)(nil)

// DocTree is a mock implementation of searchcheck.DocTree.
type DocTree struct {
	ListMarkdownFn    func(ctx context.Context) ([]string, error)
	ReadFrontMatterFn func(ctx context.Context, name string) (*searchcheck.FrontMatter, error)
}

func (t *DocTree) ListMarkdown(ctx context.Context) ([]string, error) {
	return t.ListMarkdownFn(ctx)
}

func (t *DocTree) ReadFrontMatter(ctx context.Context, name string) (*searchcheck.FrontMatter, error) {
	return t.ReadFrontMatterFn(ctx, name)
}
