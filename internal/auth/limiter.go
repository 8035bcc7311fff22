package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"zenadmin/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter throttles login attempts in a fixed window keyed by
// username + client IP. State lives in redis so restarts don't reset an
// attacker's budget.
type RedisLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

func NewRedisLimiter(rdb *redis.Client, limit int, window time.Duration) *RedisLimiter {
	if limit <= 0 {
		limit = 5
	}
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &RedisLimiter{rdb: rdb, limit: limit, window: window}
}

func (l *RedisLimiter) Allow(ctx context.Context, username, ip string) (bool, error) {
	return utils.AllowAttempt(ctx, l.rdb, l.key(username, ip), l.limit, l.window)
}

func (l *RedisLimiter) Reset(ctx context.Context, username, ip string) error {
	return utils.ResetAttempts(ctx, l.rdb, l.key(username, ip))
}

func (l *RedisLimiter) key(username, ip string) string {
	return fmt.Sprintf("login:attempts:%s:%s", strings.ToLower(username), ip)
}
