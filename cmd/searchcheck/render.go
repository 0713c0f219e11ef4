package main

import (
	"context"
	"sync"

	"github.com/fwojciec/searchcheck"
	"github.com/fwojciec/searchcheck/rod"
)

var _ searchcheck.Fetcher = (*lazyRenderer)(nil)

// lazyRenderer starts the headless browser on the first Fetch, so runs
// that never reach a server never launch Chrome.
type lazyRenderer struct {
	opts []rod.Option

	once    sync.Once
	fetcher *rod.Fetcher
	err     error
}

func (r *lazyRenderer) Fetch(ctx context.Context, url string) (string, error) {
	r.once.Do(func() {
		r.fetcher, r.err = rod.NewFetcher(r.opts...)
		if r.err != nil {
			r.err = searchcheck.Errorf(searchcheck.EUNAVAILABLE, "failed to start browser (Chrome or Chromium must be installed): %v", r.err)
		}
	})
	if r.err != nil {
		return "", r.err
	}
	return r.fetcher.Fetch(ctx, url)
}

func (r *lazyRenderer) Close() error {
	if r.fetcher == nil {
		return nil
	}
	return r.fetcher.Close()
}
