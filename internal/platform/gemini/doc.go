// Package gemini provides the word analysis client backed by Google's Gemini API.
//
// The Analyzer sends a prompt produced by the prompt package together with a
// structured-output schema, then decodes the reply into a domain.WordAnalysis.
// Responses missing any schema key, or carrying a frequency rating outside
// 1..5, are rejected with ErrInvalidResponse rather than patched up.
//
// The underlying genai client is constructed once, on first use, and shared
// across concurrent requests.
package gemini
