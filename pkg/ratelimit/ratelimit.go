// Package ratelimit throttles expensive routes per client with a sliding
// window of N requests.
package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Abraxas-365/resumeforge/pkg/errx"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter records a request for key and reports whether it fits the window.
// A denied request is not recorded.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

var ErrRegistry = errx.NewRegistry("RATELIMIT")

var CodeExceeded = ErrRegistry.Register("EXCEEDED", errx.TypeRateLimit, http.StatusTooManyRequests, "Rate limit exceeded. Please try again in 5 minutes.")

// ErrExceeded builds the 429 error for a denied decision.
func ErrExceeded(d Decision, window time.Duration) *errx.Error {
	return ErrRegistry.NewWithMessage(CodeExceeded, ExceededMessage(window)).
		WithDetail("limit", d.Limit).
		WithDetail("retry_after_seconds", RetryAfterSeconds(d))
}

// ExceededMessage tells the client how long the window is.
func ExceededMessage(window time.Duration) string {
	if window >= time.Minute && window%time.Minute == 0 {
		n := int(window / time.Minute)
		unit := "minutes"
		if n == 1 {
			unit = "minute"
		}
		return fmt.Sprintf("Rate limit exceeded. Please try again in %d %s.", n, unit)
	}
	return fmt.Sprintf("Rate limit exceeded. Please try again in %d seconds.", int(window.Seconds()))
}

// RetryAfterSeconds rounds the wait up to whole seconds, at least one.
func RetryAfterSeconds(d Decision) int {
	secs := int((d.RetryAfter + time.Second - 1) / time.Second)
	return max(secs, 1)
}
