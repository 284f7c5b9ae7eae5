// Package ratelimit defines per-client request budgets for the HTTP API.
package ratelimit

import (
	"context"
	"time"
)

// Policy is a request budget: at most Limit requests in any trailing Window.
type Policy struct {
	Limit  int
	Window time.Duration
}

// PerMinute returns a policy allowing n requests per trailing minute.
// A non-positive n falls back to DefaultPolicy.
func PerMinute(n int) Policy {
	if n <= 0 {
		return DefaultPolicy()
	}
	return Policy{Limit: n, Window: time.Minute}
}

// DefaultPolicy allows 100 requests per minute.
func DefaultPolicy() Policy {
	return Policy{Limit: 100, Window: time.Minute}
}

// Decision is the outcome of checking one request against a Policy.
type Decision struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
	// RetryAfter is zero when Allowed.
	RetryAfter time.Duration
}

// Limiter decides whether the client identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (*Decision, error)
}
