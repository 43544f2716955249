package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrInvalidConfig is returned when the analyzer configuration is invalid
	// or the client cannot be constructed.
	ErrInvalidConfig = errors.New("invalid analyzer configuration")

	// ErrInvalidResponse is returned when the model response is missing,
	// malformed, or does not satisfy the WordAnalysis schema.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the model blocks the content due to safety filters.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrEmptyPrompt is returned when Analyze is called with an empty prompt.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
)
