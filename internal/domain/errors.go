package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrUnsupportedContent is returned when a request body is not JSON.
	ErrUnsupportedContent = errors.New("unsupported media type")

	// ErrInvalidRequest is returned when a JSON body cannot be decoded.
	ErrInvalidRequest = errors.New("invalid request format")

	// ErrMissingFields is returned when sentence, word or tag is absent.
	ErrMissingFields = errors.New("missing required fields")
)
