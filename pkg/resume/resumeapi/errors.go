package resumeapi

import (
	"errors"

	"github.com/Abraxas-365/resumeforge/pkg/errx"
	"github.com/Abraxas-365/resumeforge/pkg/logx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok && id != "" {
		return id
	}
	return c.Get(fiber.HeaderXRequestID)
}

// ErrorHandler renders errors as JSON. Causes are exposed only when
// exposeCause is set, which the server does in development.
func ErrorHandler(exposeCause bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		rid := requestID(c)

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(errx.Response{
				Error:     fe.Message,
				Code:      "HTTP_ERROR",
				Type:      string(errx.TypeValidation),
				Status:    fe.Code,
				RequestID: rid,
			})
		}

		e := errx.From(err)
		entry := logx.WithContext(c.UserContext()).WithError(err).WithFields(logx.Fields{
			"path":       c.Path(),
			"method":     c.Method(),
			"ip":         c.IP(),
			"request_id": rid,
			"code":       e.Code,
		})
		if e.HTTPStatus >= fiber.StatusInternalServerError {
			entry.Error("Request failed")
		} else {
			entry.Warn("Request rejected")
		}

		return c.Status(e.HTTPStatus).JSON(e.ToResponse(rid, exposeCause))
	}
}

// NotFound answers unknown routes.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":      "Route not found",
		"code":       "NOT_FOUND",
		"path":       c.Path(),
		"method":     c.Method(),
		"message":    "The requested endpoint does not exist",
		"request_id": requestID(c),
	})
}
