package aianthropic

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Abraxas-365/resumeforge/pkg/errx"
	"github.com/anthropics/anthropic-sdk-go"
)

var (
	errorRegistry = errx.NewRegistry("ANTHROPIC")

	ErrAPIRequest      = errorRegistry.Register("API_REQUEST_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to make request to Anthropic API")
	ErrAPIUnauthorized = errorRegistry.Register("API_UNAUTHORIZED", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid or missing Anthropic API key")
	ErrAPIRateLimit    = errorRegistry.Register("API_RATE_LIMIT", errx.TypeExternal, http.StatusTooManyRequests, "Anthropic API rate limit exceeded")
	ErrOverloaded      = errorRegistry.Register("OVERLOADED", errx.TypeExternal, http.StatusServiceUnavailable, "Anthropic API is overloaded")
	ErrModelNotFound   = errorRegistry.Register("MODEL_NOT_FOUND", errx.TypeValidation, http.StatusNotFound, "Requested model not found")
	ErrEmptyMessages   = errorRegistry.Register("EMPTY_MESSAGES", errx.TypeValidation, http.StatusBadRequest, "Messages array cannot be empty")
	ErrMissingAPIKey   = errorRegistry.Register("MISSING_API_KEY", errx.TypeValidation, http.StatusBadRequest, "Anthropic API key not provided")
)

// ParseAnthropicError maps SDK errors onto ANTHROPIC_* codes.
func ParseAnthropicError(err error) *errx.Error {
	if err == nil {
		return nil
	}

	var existing *errx.Error
	if errx.As(err, &existing) {
		return existing
	}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return errorRegistry.NewWithCause(ErrAPIUnauthorized, err)
		case http.StatusTooManyRequests:
			return errorRegistry.NewWithCause(ErrAPIRateLimit, err)
		case http.StatusNotFound:
			return errorRegistry.NewWithCause(ErrModelNotFound, err)
		case 529:
			return errorRegistry.NewWithCause(ErrOverloaded, err)
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "x-api-key") || strings.Contains(msg, "authentication"):
		return errorRegistry.NewWithCause(ErrAPIUnauthorized, err)
	case strings.Contains(msg, "overloaded"):
		return errorRegistry.NewWithCause(ErrOverloaded, err)
	case strings.Contains(msg, "rate limit") || strings.Contains(msg, "rate_limit"):
		return errorRegistry.NewWithCause(ErrAPIRateLimit, err)
	}
	return errorRegistry.NewWithCause(ErrAPIRequest, err)
}
