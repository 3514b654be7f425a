package ratelimit

import (
	"strconv"
	"time"

	"github.com/Abraxas-365/resumeforge/pkg/logx"
	"github.com/gofiber/fiber/v2"
)

// Config configures the fiber middleware.
type Config struct {
	Limiter Limiter
	Window  time.Duration

	// KeyFunc defaults to ClientKey.
	KeyFunc func(c *fiber.Ctx) string

	// OnLimited handles a denied request. The default returns ErrExceeded,
	// which the global error handler renders as JSON.
	OnLimited func(c *fiber.Ctx, d Decision) error
}

// ClientKey identifies the client by the raw X-Forwarded-For header when a
// proxy sets it, otherwise by the remote address.
func ClientKey(c *fiber.Ctx) string {
	if xff := c.Get(fiber.HeaderXForwardedFor); xff != "" {
		return xff
	}
	return c.IP()
}

// New returns middleware enforcing cfg.Limiter. Limiter failures let the
// request through.
func New(cfg Config) fiber.Handler {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = ClientKey
	}
	if cfg.OnLimited == nil {
		cfg.OnLimited = func(c *fiber.Ctx, d Decision) error {
			return ErrExceeded(d, cfg.Window)
		}
	}

	return func(c *fiber.Ctx) error {
		key := cfg.KeyFunc(c)

		d, err := cfg.Limiter.Allow(c.UserContext(), key)
		if err != nil {
			logx.WithContext(c.UserContext()).WithError(err).WithField("client", key).
				Warn("Rate limiter unavailable, allowing request")
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))

		if !d.Allowed {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(RetryAfterSeconds(d)))
			logx.WithContext(c.UserContext()).WithFields(logx.Fields{
				"client": key,
				"limit":  d.Limit,
			}).Warn("Rate limit exceeded")
			return cfg.OnLimited(c, d)
		}
		return c.Next()
	}
}
