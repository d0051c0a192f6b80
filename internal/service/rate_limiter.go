package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const rateLimitKeyPrefix = "course-platform:ratelimit:"

// slidingWindowScript trims the window, then either records the request or
// reports the oldest entry, in one atomic step.
// KEYS[1] window set; ARGV: window start ms, now ms, limit, member, ttl ms.
// Returns {allowed, used before this request, oldest score or -1}.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
redis.call('ZREMRANGEBYSCORE', key, '-inf', '(' .. ARGV[1])
local used = redis.call('ZCARD', key)
if used >= tonumber(ARGV[3]) then
	local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
	if oldest[2] then
		return {0, used, tonumber(oldest[2])}
	end
	return {0, used, -1}
end
redis.call('ZADD', key, ARGV[2], ARGV[4])
redis.call('PEXPIRE', key, ARGV[5])
return {1, used, -1}
`)

// RateLimitResult describes the outcome of one rate limit check
type RateLimitResult struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiter is a sliding-window log limiter backed by a Redis sorted set
type RateLimiter struct {
	client redis.Cmdable
	now    func() time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(client redis.Cmdable) *RateLimiter {
	return &RateLimiter{client: client, now: time.Now}
}

// Allow records one request for key if fewer than limit requests were seen in the last window
func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (*RateLimitResult, error) {
	now := r.now()

	reply, err := slidingWindowScript.Run(ctx, r.client,
		[]string{rateLimitKeyPrefix + key},
		now.Add(-window).UnixMilli(),
		now.UnixMilli(),
		limit,
		uuid.NewString(),
		(window + time.Minute).Milliseconds(),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate rate limit: %w", err)
	}
	if len(reply) != 3 {
		return nil, fmt.Errorf("unexpected rate limit reply %v", reply)
	}

	allowed, used, oldest := reply[0] == 1, int(reply[1]), reply[2]
	if !allowed {
		result := &RateLimitResult{Limit: limit, RetryAfter: window}
		if oldest >= 0 {
			result.RetryAfter = max(window-now.Sub(time.UnixMilli(oldest)), 0)
		}
		return result, nil
	}

	return &RateLimitResult{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - used - 1,
	}, nil
}
