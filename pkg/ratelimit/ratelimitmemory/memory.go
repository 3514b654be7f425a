// Package ratelimitmemory is a process local sliding window limiter, used
// when no Redis is configured.
package ratelimitmemory

import (
	"context"
	"sync"
	"time"

	"github.com/Abraxas-365/resumeforge/pkg/ratelimit"
)

type Limiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
	now      func() time.Time
}

var _ ratelimit.Limiter = (*Limiter)(nil)

type Option func(*Limiter)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

func New(limit int, window time.Duration, opts ...Option) *Limiter {
	l := &Limiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Limiter) Allow(ctx context.Context, key string) (ratelimit.Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	recent := l.recent(key, now)

	d := ratelimit.Decision{Limit: l.limit}
	if len(recent) >= l.limit {
		l.requests[key] = recent
		if len(recent) > 0 {
			d.RetryAfter = recent[0].Add(l.window).Sub(now)
		}
		return d, nil
	}

	l.requests[key] = append(recent, now)
	d.Allowed = true
	d.Remaining = l.limit - len(recent) - 1
	return d, nil
}

// recent drops timestamps that have left the window. Caller holds mu.
func (l *Limiter) recent(key string, now time.Time) []time.Time {
	times := l.requests[key]
	i := 0
	for i < len(times) && now.Sub(times[i]) >= l.window {
		i++
	}
	return times[i:]
}

// Prune forgets clients with no request inside the window and returns how
// many were removed.
func (l *Limiter) Prune() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for key := range l.requests {
		if len(l.recent(key, now)) == 0 {
			delete(l.requests, key)
			removed++
		}
	}
	return removed
}
