package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter implements a fixed-window counter backed by Redis.
// Key format: ratelimit:<scope>:<caller>
type RateLimiter struct {
	client *redis.Client
}

// NewRateLimiter creates a RateLimiter wrapping the given Redis client.
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// Allow increments the caller's counter for the given scope and reports
// whether the caller is still under limit within the current window. The
// window starts on the first hit and expires after window.
func (l *RateLimiter) Allow(ctx context.Context, scope, caller string, limit int64, window time.Duration) (bool, error) {
	key := l.key(scope, caller)

	pipe := l.client.TxPipeline()
	count := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit check: %w", err)
	}

	return count.Val() <= limit, nil
}

func (l *RateLimiter) key(scope, caller string) string {
	return fmt.Sprintf("ratelimit:%s:%s", scope, caller)
}
