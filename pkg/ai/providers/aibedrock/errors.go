package aibedrock

import (
	"errors"
	"net/http"

	"github.com/Abraxas-365/resumeforge/pkg/errx"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

var (
	errorRegistry = errx.NewRegistry("BEDROCK")

	ErrAPIRequest      = errorRegistry.Register("API_REQUEST_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to make request to Bedrock")
	ErrAPIResponse     = errorRegistry.Register("API_RESPONSE_INVALID", errx.TypeExternal, http.StatusBadGateway, "Invalid response from Bedrock")
	ErrAPIUnauthorized = errorRegistry.Register("API_UNAUTHORIZED", errx.TypeAuthorization, http.StatusUnauthorized, "Access to the Bedrock model was denied")
	ErrAPIRateLimit    = errorRegistry.Register("API_RATE_LIMIT", errx.TypeExternal, http.StatusTooManyRequests, "Bedrock request was throttled")
	ErrModelNotFound   = errorRegistry.Register("MODEL_NOT_FOUND", errx.TypeValidation, http.StatusNotFound, "Bedrock model not found")
	ErrInvalidRequest  = errorRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Bedrock rejected the request")
	ErrEmptyMessages   = errorRegistry.Register("EMPTY_MESSAGES", errx.TypeValidation, http.StatusBadRequest, "Messages array cannot be empty")
)

// ParseBedrockError maps typed Bedrock exceptions onto BEDROCK_* codes.
func ParseBedrockError(err error) *errx.Error {
	if err == nil {
		return nil
	}

	var existing *errx.Error
	if errx.As(err, &existing) {
		return existing
	}

	var (
		denied     *types.AccessDeniedException
		throttled  *types.ThrottlingException
		notFound   *types.ResourceNotFoundException
		validation *types.ValidationException
	)
	switch {
	case errors.As(err, &denied):
		return errorRegistry.NewWithCause(ErrAPIUnauthorized, err)
	case errors.As(err, &throttled):
		return errorRegistry.NewWithCause(ErrAPIRateLimit, err)
	case errors.As(err, &notFound):
		return errorRegistry.NewWithCause(ErrModelNotFound, err)
	case errors.As(err, &validation):
		return errorRegistry.NewWithCause(ErrInvalidRequest, err)
	}
	return errorRegistry.NewWithCause(ErrAPIRequest, err)
}
