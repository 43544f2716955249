// Package api handles incoming HTTP requests, request validation and
// response formatting. It adapts the card generation service to a single
// JSON endpoint: one sentence, word and tag in, one finished card out.
//
// Request errors map to fixed messages (415 for a non-JSON media type, 400
// for a malformed body or missing fields). Any other failure is a 500 whose
// body carries the error message with credentials redacted.
package api
