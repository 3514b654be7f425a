package aiopenai

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Abraxas-365/resumeforge/pkg/errx"
	"github.com/openai/openai-go/v3"
)

var (
	errorRegistry = errx.NewRegistry("OPENAI")

	ErrAPIRequest      = errorRegistry.Register("API_REQUEST_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to make request to OpenAI API")
	ErrAPIUnauthorized = errorRegistry.Register("API_UNAUTHORIZED", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid or missing OpenAI API key")
	ErrAPIRateLimit    = errorRegistry.Register("API_RATE_LIMIT", errx.TypeExternal, http.StatusTooManyRequests, "OpenAI API rate limit exceeded")
	ErrModelNotFound   = errorRegistry.Register("MODEL_NOT_FOUND", errx.TypeValidation, http.StatusNotFound, "Requested model or deployment not found")
	ErrContextLength   = errorRegistry.Register("CONTEXT_LENGTH_EXCEEDED", errx.TypeValidation, http.StatusBadRequest, "Context length exceeds model maximum")
	ErrNoChoices       = errorRegistry.Register("NO_CHOICES", errx.TypeExternal, http.StatusBadGateway, "No choices in OpenAI response")
	ErrEmptyMessages   = errorRegistry.Register("EMPTY_MESSAGES", errx.TypeValidation, http.StatusBadRequest, "Messages array cannot be empty")
	ErrMissingAPIKey   = errorRegistry.Register("MISSING_API_KEY", errx.TypeValidation, http.StatusBadRequest, "OpenAI API key not provided")
	ErrMissingEndpoint = errorRegistry.Register("MISSING_ENDPOINT", errx.TypeValidation, http.StatusBadRequest, "Azure OpenAI endpoint not provided")
)

// ParseOpenAIError maps SDK errors, preferring the HTTP status when present.
func ParseOpenAIError(err error) *errx.Error {
	if err == nil {
		return nil
	}

	var existing *errx.Error
	if errx.As(err, &existing) {
		return existing
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return errorRegistry.NewWithCause(ErrAPIUnauthorized, err)
		case http.StatusTooManyRequests:
			return errorRegistry.NewWithCause(ErrAPIRateLimit, err)
		case http.StatusNotFound:
			return errorRegistry.NewWithCause(ErrModelNotFound, err)
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "context length") || strings.Contains(msg, "maximum context"):
		return errorRegistry.NewWithCause(ErrContextLength, err)
	case strings.Contains(msg, "rate limit"):
		return errorRegistry.NewWithCause(ErrAPIRateLimit, err)
	case strings.Contains(msg, "api key"):
		return errorRegistry.NewWithCause(ErrAPIUnauthorized, err)
	}
	return errorRegistry.NewWithCause(ErrAPIRequest, err)
}
