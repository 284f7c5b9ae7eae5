// Package ratelimit limits requests per client IP with a Redis sliding window.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/kongbaihui/todo---fullstack/domain/ratelimit"
	"github.com/redis/go-redis/v9"
)

// slidingWindowScript trims the window, counts what is left and records the
// request when there is room. It returns {allowed, remaining, retry_after_ms}.
var slidingWindowScript = redis.NewScript(`
	local key = KEYS[1]
	local counter_key = KEYS[2]
	local now = tonumber(ARGV[1])
	local window_start = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])
	local window_size_ms = tonumber(ARGV[4])

	redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)

	local count = redis.call('ZCARD', key)

	if count < limit then
		local counter = redis.call('INCR', counter_key)
		redis.call('ZADD', key, now, now .. ':' .. counter)
		redis.call('PEXPIRE', key, window_size_ms)
		redis.call('PEXPIRE', counter_key, window_size_ms)
		return {1, limit - count - 1, 0}
	end

	local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
	local retry_after = 0
	if #oldest >= 2 then
		retry_after = oldest[2] + window_size_ms - now
	end
	return {0, 0, retry_after}
`)

// SlidingWindowLimiter implements ratelimit.Limiter on a Redis sorted set of
// request timestamps.
type SlidingWindowLimiter struct {
	client redis.Scripter
	policy ratelimit.Policy
	prefix string
}

var _ ratelimit.Limiter = (*SlidingWindowLimiter)(nil)

// NewSlidingWindowLimiter creates a new sliding window rate limiter.
func NewSlidingWindowLimiter(client redis.Scripter, policy ratelimit.Policy, prefix string) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		client: client,
		policy: policy,
		prefix: prefix,
	}
}

// Allow records a request for key if the window has room.
func (l *SlidingWindowLimiter) Allow(ctx context.Context, key string) (*ratelimit.Decision, error) {
	now := time.Now()
	redisKey := l.prefix + key

	result, err := slidingWindowScript.Run(ctx, l.client, []string{redisKey, redisKey + ":counter"},
		now.UnixMilli(),
		now.Add(-l.policy.Window).UnixMilli(),
		l.policy.Limit,
		l.policy.Window.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("failed to run rate limit script: %w", err)
	}
	if len(result) < 3 {
		return nil, fmt.Errorf("unexpected result length: %d", len(result))
	}

	res := &ratelimit.Decision{
		Allowed:   result[0] == 1,
		Remaining: int(result[1]),
		ResetAt:   now.Add(l.policy.Window),
	}
	if !res.Allowed && result[2] > 0 {
		res.RetryAfter = time.Duration(result[2]) * time.Millisecond
	}

	return res, nil
}

// Policy returns the budget the limiter enforces.
func (l *SlidingWindowLimiter) Policy() ratelimit.Policy {
	return l.policy
}
