package mock

import (
	"context"

	"github.com/fwojciec/searchcheck"
)

var _ searchcheck.Prompter = (*Prompter)(nil)

// Prompter is a mock implementation of searchcheck.Prompter.
type Prompter struct {
	ConfirmFn func(ctx context.Context, question string) (bool, error)
}

func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	return p.ConfirmFn(ctx, question)
}

var _ searchcheck.Browser = (*Browser)(nil)

// Browser is a mock implementation of searchcheck.Browser.
type Browser struct {
	OpenFn func(ctx context.Context, url string) error
}

func (b *Browser) Open(ctx context.Context, url string) error {
	return b.OpenFn(ctx, url)
}

var _ searchcheck.GuideRenderer = (*GuideRenderer)(nil)

// GuideRenderer is a mock implementation of searchcheck.GuideRenderer.
type GuideRenderer struct {
	RenderGuideFn func(markdown string) (string, error)
}

func (r *GuideRenderer) RenderGuide(markdown string) (string, error) {
	return r.RenderGuideFn(markdown)
}
