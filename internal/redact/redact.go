// Package redact removes credentials from strings before they are logged.
// Upstream SDK errors from the analysis, speech and archive services can echo
// request URLs and headers, and those carry API keys and bearer tokens.
package redact

import "regexp"

// Placeholders substituted for redacted values.
const (
	RedactionPlaceholder     = "[REDACTED]"
	RedactedKeyPlaceholder   = "[REDACTED_KEY]"
	RedactedTokenPlaceholder = "[REDACTED_TOKEN]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Rules are applied in order; earlier rules see the raw text.
var rules = []rule{
	// Authorization headers
	{regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9._~+/=-]+`), "Bearer " + RedactedTokenPlaceholder},
	// Credentials passed as query parameters (?key=..., &token=...)
	{regexp.MustCompile(`(?i)([?&](?:key|api_key|token)=)[^&\s"']+`), "${1}" + RedactionPlaceholder},
	// Google API keys
	{regexp.MustCompile(`AIza[0-9A-Za-z_-]{20,}`), RedactedKeyPlaceholder},
	// OpenAI keys
	{regexp.MustCompile(`sk-[A-Za-z0-9_-]{16,}`), RedactedKeyPlaceholder},
	// Notion integration secrets
	{regexp.MustCompile(`\b(?:secret|ntn)_[A-Za-z0-9]{16,}`), RedactedKeyPlaceholder},
	// key: value / key=value assignments
	{
		regexp.MustCompile(`(?i)((?:api[_-]?key|token|secret)["']?\s*[:=]\s*["']?)[A-Za-z0-9_\-.~+/]{8,}`),
		"${1}" + RedactionPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
