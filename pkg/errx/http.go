package errx

import (
	"errors"
	"net/http"
)

// Response is the JSON body returned for failed API requests.
type Response struct {
	Error           string         `json:"error"`
	Code            string         `json:"code"`
	Type            string         `json:"type"`
	Status          int            `json:"status"`
	RequestID       string         `json:"request_id,omitempty"`
	Details         map[string]any `json:"details,omitempty"`
	UnderlyingError string         `json:"underlying_error,omitempty"`
}

// ToResponse builds the API body. Causes are only included when exposeCause is set.
func (e *Error) ToResponse(requestID string, exposeCause bool) Response {
	resp := Response{
		Error:     e.Message,
		Code:      e.Code,
		Type:      string(e.Type),
		Status:    e.HTTPStatus,
		RequestID: requestID,
		Details:   e.Details,
	}
	if exposeCause && e.Err != nil {
		resp.UnderlyingError = e.Err.Error()
	}
	return resp
}

// StatusOf returns the HTTP status carried by err, or 500.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) && e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return http.StatusInternalServerError
}

// From converts any error into an *Error, wrapping unknown errors as internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, "Internal server error", TypeInternal)
}
