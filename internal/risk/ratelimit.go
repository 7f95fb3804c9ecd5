package risk

import (
	"golang.org/x/time/rate"
)

// RateLimiter caps order submission throughput using a token bucket:
// Limits.MaxOrdersPerSecond tokens refill per second, with a burst
// equal to one second's worth so a quiet period doesn't let a caller
// build up an unbounded backlog of credit.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter builds a limiter from the given per-second cap. A cap
// of 0 disables limiting (Allow always returns true).
func NewRateLimiter(perSecond int) *RateLimiter {
	if perSecond <= 0 {
		return &RateLimiter{}
	}
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(perSecond), perSecond)}
}

// Allow reports whether one more order may be submitted right now,
// consuming a token if so.
func (r *RateLimiter) Allow() bool {
	if r.limiter == nil {
		return true
	}
	return r.limiter.Allow()
}
