package domain

import (
	"fmt"
)

// AnalysisRequest is one inbound request: a sentence, the word in it to
// study, and the topical tag (usually the show it was heard in).
type AnalysisRequest struct {
	Sentence string `json:"sentence"`
	Word     string `json:"word"`
	Tag      string `json:"tag"`
}

// NoTag suppresses the tag clause of the analysis prompt.
const NoTag = "Other"

// WordAnalysis is the fixed-shape record returned by the analysis model.
// Optional text fields are "" when absent and list fields are empty slices,
// never nil once Normalize has run.
type WordAnalysis struct {
	ContextualTranslation string   `json:"contextual_translation"`
	PreciseTranslation    string   `json:"precise_translation"`
	FrequencyRating       int      `json:"frequency_rating" validate:"gte=1,lte=5"`
	IPA                   string   `json:"ipa"`
	PartOfSpeech          string   `json:"part_of_speech"`
	EnglishDefinition     string   `json:"english_definition"`
	JapaneseMeaning       string   `json:"japanese_meaning"`
	ExampleSentence       string   `json:"example_sentence"`
	CoreMeaning           string   `json:"core_meaning"`
	Antonyms              []string `json:"antonyms"`
	Synonyms              []string `json:"synonyms"`
	Slang                 string   `json:"slang"`
	Idioms                string   `json:"idioms"`
	JapaneseUsage         string   `json:"japanese_usage"`
	MemoryAids            string   `json:"memory_aids"`
	Terminology           string   `json:"terminology"`
	Explanation           string   `json:"explanation"`
}

// WordAnalysisFields lists the JSON keys of WordAnalysis in schema order.
// The analysis client requires every one of them in a model response.
var WordAnalysisFields = []string{
	"contextual_translation",
	"precise_translation",
	"frequency_rating",
	"ipa",
	"part_of_speech",
	"english_definition",
	"japanese_meaning",
	"example_sentence",
	"core_meaning",
	"antonyms",
	"synonyms",
	"slang",
	"idioms",
	"japanese_usage",
	"memory_aids",
	"terminology",
	"explanation",
}

// Normalize replaces nil lists with empty ones.
func (a *WordAnalysis) Normalize() {
	if a.Antonyms == nil {
		a.Antonyms = []string{}
	}
	if a.Synonyms == nil {
		a.Synonyms = []string{}
	}
}

// Validate checks the invariants that formatting relies on.
func (a *WordAnalysis) Validate() error {
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// AudioClip is synthesized speech held in memory for one response.
type AudioClip struct {
	// Base64 is the standard base64 encoding of the MP3 bytes.
	Base64 string
	// Embed is the note-embed reference, e.g. ![[love-1a2b3c.mp3]].
	Embed string
}
