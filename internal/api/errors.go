package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/wordcard-api/internal/domain"
	"github.com/phrazzld/wordcard-api/internal/redact"
)

// MapErrorToStatusCode maps request errors to 4xx codes. Everything else,
// including upstream model and speech failures, is a 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnsupportedContent):
		return http.StatusUnsupportedMediaType

	case errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrMissingFields):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the client-facing message for err. Request
// errors get fixed messages; any other failure is reported with its own
// message after secrets are redacted.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrUnsupportedContent):
		return "Unsupported Media Type"

	case errors.Is(err, domain.ErrInvalidRequest):
		return "Invalid request format"

	case errors.Is(err, domain.ErrMissingFields):
		return "Missing required fields"

	default:
		return redact.Error(err)
	}
}
