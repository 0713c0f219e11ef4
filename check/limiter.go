package check

import (
	"context"
	"sync"

	"github.com/fwojciec/searchcheck"
	"golang.org/x/time/rate"
)

var _ searchcheck.HostLimiter = (*HostLimiter)(nil)

// HostLimiter provides per-host rate limiting using token buckets.
// Each host gets its own limiter with a burst of 1.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewHostLimiter creates a HostLimiter allowing rps requests per second to
// each host. A non-positive rps disables limiting.
func NewHostLimiter(rps float64) *HostLimiter {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until the rate limit allows a request to the host.
// Returns an error if the context is canceled before the wait completes.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	l.mu.Lock()
	limiter, ok := l.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(l.limit, 1)
		l.limiters[host] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}
