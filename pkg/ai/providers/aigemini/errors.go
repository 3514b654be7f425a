package aigemini

import (
	"net/http"
	"strings"

	"github.com/Abraxas-365/resumeforge/pkg/errx"
)

var (
	errorRegistry = errx.NewRegistry("GEMINI")

	ErrAPIRequest      = errorRegistry.Register("API_REQUEST_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to make request to Gemini API")
	ErrAPIResponse     = errorRegistry.Register("API_RESPONSE_INVALID", errx.TypeExternal, http.StatusBadGateway, "Invalid response from Gemini API")
	ErrAPIUnauthorized = errorRegistry.Register("API_UNAUTHORIZED", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid or missing Gemini API key")
	ErrAPIRateLimit    = errorRegistry.Register("API_RATE_LIMIT", errx.TypeExternal, http.StatusTooManyRequests, "Gemini API rate limit exceeded")
	ErrModelNotFound   = errorRegistry.Register("MODEL_NOT_FOUND", errx.TypeValidation, http.StatusNotFound, "Requested model not found or not accessible")
	ErrSafetyBlocked   = errorRegistry.Register("SAFETY_BLOCKED", errx.TypeExternal, http.StatusBadGateway, "Response blocked by Gemini safety filters")
	ErrEmptyMessages   = errorRegistry.Register("EMPTY_MESSAGES", errx.TypeValidation, http.StatusBadRequest, "Messages array cannot be empty")
	ErrMissingAPIKey   = errorRegistry.Register("MISSING_API_KEY", errx.TypeValidation, http.StatusBadRequest, "Gemini API key not provided")
)

// ParseGeminiError maps an SDK error onto a GEMINI_* code.
func ParseGeminiError(err error) *errx.Error {
	if err == nil {
		return nil
	}

	var existing *errx.Error
	if errx.As(err, &existing) {
		return existing
	}

	msg := strings.ToLower(err.Error())
	code := ErrAPIRequest
	switch {
	case strings.Contains(msg, "api key") || strings.Contains(msg, "unauthorized") || strings.Contains(msg, "permission denied"):
		code = ErrAPIUnauthorized
	case strings.Contains(msg, "rate limit") || strings.Contains(msg, "resource exhausted") || strings.Contains(msg, "quota"):
		code = ErrAPIRateLimit
	case strings.Contains(msg, "not found"):
		code = ErrModelNotFound
	case strings.Contains(msg, "safety"):
		code = ErrSafetyBlocked
	}
	return errorRegistry.NewWithCause(code, err)
}
