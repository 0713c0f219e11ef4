package mock

import (
	"context"

	"github.com/fwojciec/searchcheck"
)

var _ searchcheck.ConfigLoader = (*ConfigLoader)(nil)

// ConfigLoader is a mock implementation of searchcheck.ConfigLoader.
type ConfigLoader struct {
	LoadConfigFn func(ctx context.Context, path string) (*searchcheck.SiteConfig, error)
}

func (l *ConfigLoader) LoadConfig(ctx context.Context, path string) (*searchcheck.SiteConfig, error) {
	return l.LoadConfigFn(ctx, path)
}
