// Package prompt renders the instruction text sent to the word analysis model.
package prompt

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/phrazzld/wordcard-api/internal/domain"
)

//go:embed templates/word_analysis.tmpl
var templateFS embed.FS

var wordAnalysisTemplate = template.Must(
	template.ParseFS(templateFS, "templates/word_analysis.tmpl"),
)

// ErrEmptyInput is returned when the sentence or word is empty. It wraps
// domain.ErrMissingFields so callers report it as a request error.
var ErrEmptyInput = fmt.Errorf("%w: sentence and word cannot be empty", domain.ErrMissingFields)

// promptData is the data passed to the prompt template.
type promptData struct {
	Sentence string
	Word     string
	Tag      string
	ShowTag  bool
}

// Build returns the analysis instructions for word as used in sentence.
// Only a tag equal to domain.NoTag drops the "while watching" clause.
// The output is deterministic for the same inputs.
func Build(sentence, word, tag string) (string, error) {
	if sentence == "" || word == "" {
		return "", ErrEmptyInput
	}

	data := promptData{
		Sentence: sentence,
		Word:     word,
		Tag:      tag,
		ShowTag:  tag != domain.NoTag,
	}

	var buf bytes.Buffer
	if err := wordAnalysisTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}
