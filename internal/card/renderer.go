package card

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

// MissingPlaceholder is printed for keys absent from the rendered fields.
const MissingPlaceholder = "None"

//go:embed templates/anki.tmpl
var templateFS embed.FS

var ankiTemplate = template.Must(
	template.New("anki.tmpl").
		Funcs(template.FuncMap{
			"field":   field,
			"fieldOr": fieldOr,
		}).
		ParseFS(templateFS, "templates/anki.tmpl"),
)

// Render fills the Anki import template from a flat card mapping. Besides
// the card keys it reads "word", "tag" and "audio_embed".
func Render(fields map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := ankiTemplate.Execute(&buf, fields); err != nil {
		return "", fmt.Errorf("failed to execute anki template: %w", err)
	}
	return buf.String(), nil
}

func field(fields map[string]any, key string) string {
	return fieldOr(fields, key, MissingPlaceholder)
}

func fieldOr(fields map[string]any, key, fallback string) string {
	v, ok := fields[key]
	if !ok || v == nil {
		return fallback
	}
	return fmt.Sprint(v)
}
