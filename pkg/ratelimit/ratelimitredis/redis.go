// Package ratelimitredis shares the sliding window across instances with a
// Redis sorted set per client.
package ratelimitredis

import (
	"context"
	"fmt"
	"time"

	"github.com/Abraxas-365/resumeforge/pkg/errx"
	"github.com/Abraxas-365/resumeforge/pkg/ratelimit"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var redisErrors = errx.NewRegistry("RATELIMIT_REDIS")

var ErrScript = redisErrors.Register("SCRIPT", errx.TypeExternal, 500, "Redis rate limit script failed")

// Limiter implements ratelimit.Limiter.
type Limiter struct {
	rdb    *redis.Client
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
}

var _ ratelimit.Limiter = (*Limiter)(nil)

type Option func(*Limiter)

// WithPrefix namespaces the sorted set keys.
func WithPrefix(prefix string) Option {
	return func(l *Limiter) { l.prefix = prefix }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

func New(rdb *redis.Client, limit int, window time.Duration, opts ...Option) *Limiter {
	l := &Limiter{rdb: rdb, prefix: "ratelimit", limit: limit, window: window, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Limiter) key(client string) string { return fmt.Sprintf("%s:%s", l.prefix, client) }

// Scores are unix milliseconds. Returns {allowed, count, retry_after_ms}.
var allowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
if count >= limit then
    local retry = window
    local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
    if #oldest > 0 then
        retry = tonumber(oldest[2]) + window - now
    end
    return {0, count, retry}
end
redis.call('ZADD', key, now, ARGV[4])
redis.call('PEXPIRE', key, window)
return {1, count + 1, 0}
`)

func (l *Limiter) Allow(ctx context.Context, key string) (ratelimit.Decision, error) {
	now := l.now().UnixMilli()

	res, err := allowScript.Run(ctx, l.rdb,
		[]string{l.key(key)},
		now, l.window.Milliseconds(), l.limit, uuid.NewString(),
	).Int64Slice()
	if err != nil {
		return ratelimit.Decision{}, redisErrors.NewWithCause(ErrScript, err).WithDetail("client", key)
	}
	if len(res) != 3 {
		return ratelimit.Decision{}, redisErrors.New(ErrScript).WithDetail("reply_len", len(res))
	}

	d := ratelimit.Decision{
		Allowed:    res[0] == 1,
		Limit:      l.limit,
		RetryAfter: time.Duration(res[2]) * time.Millisecond,
	}
	if d.Allowed {
		d.Remaining = max(0, l.limit-int(res[1]))
	}
	return d, nil
}

// Ping verifies the connection, used by the health check.
func (l *Limiter) Ping(ctx context.Context) error {
	return l.rdb.Ping(ctx).Err()
}
