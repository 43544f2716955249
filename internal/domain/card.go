package domain

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// EnrichedCard is a WordAnalysis merged with every derived field. It is the
// single source for template rendering and archiving.
//
// The embedded analysis is flattened into the same JSON object, so derived
// keys must never reuse a WordAnalysis key.
type EnrichedCard struct {
	WordAnalysis

	JobID                   string `json:"job_id"`
	CreatedAt               string `json:"created_at"`
	ObsidianURI             string `json:"obsidian_uri"`
	PlayphraseMeURL         string `json:"playphrase_me_url"`
	ImageEmbed              string `json:"image_embed"`
	HighlightedSentence     string `json:"highlighted_sentence"`
	RatingStar              string `json:"rating_star"`
	TargetDeck              string `json:"target_deck"`
	FormattedExEnglish      string `json:"formatted_ex_english"`
	ExSentenceEnglish       string `json:"ex_sentence_english"`
	ExSentenceJapanese      string `json:"ex_sentence_japanese"`
	FormattedExSentence     string `json:"formatted_ex_sentence"`
	FormattedExEnglishAudio string `json:"formatted_ex_english_audio"`
	ExAudioBase64           string `json:"ex_audio_base64"`
	ExAudioEmbed            string `json:"ex_audio_embed"`
	SynonymsStr             string `json:"synonyms_str"`
	AntonymsStr             string `json:"antonyms_str"`
}

// Fields returns the card as a flat key/value mapping using the JSON keys.
func (c *EnrichedCard) Fields() map[string]any {
	a := c.WordAnalysis
	return map[string]any{
		"contextual_translation": a.ContextualTranslation,
		"precise_translation":    a.PreciseTranslation,
		"frequency_rating":       a.FrequencyRating,
		"ipa":                    a.IPA,
		"part_of_speech":         a.PartOfSpeech,
		"english_definition":     a.EnglishDefinition,
		"japanese_meaning":       a.JapaneseMeaning,
		"example_sentence":       a.ExampleSentence,
		"core_meaning":           a.CoreMeaning,
		"antonyms":               a.Antonyms,
		"synonyms":               a.Synonyms,
		"slang":                  a.Slang,
		"idioms":                 a.Idioms,
		"japanese_usage":         a.JapaneseUsage,
		"memory_aids":            a.MemoryAids,
		"terminology":            a.Terminology,
		"explanation":            a.Explanation,

		"job_id":                     c.JobID,
		"created_at":                 c.CreatedAt,
		"obsidian_uri":               c.ObsidianURI,
		"playphrase_me_url":          c.PlayphraseMeURL,
		"image_embed":                c.ImageEmbed,
		"highlighted_sentence":       c.HighlightedSentence,
		"rating_star":                c.RatingStar,
		"target_deck":                c.TargetDeck,
		"formatted_ex_english":       c.FormattedExEnglish,
		"ex_sentence_english":        c.ExSentenceEnglish,
		"ex_sentence_japanese":       c.ExSentenceJapanese,
		"formatted_ex_sentence":      c.FormattedExSentence,
		"formatted_ex_english_audio": c.FormattedExEnglishAudio,
		"ex_audio_base64":            c.ExAudioBase64,
		"ex_audio_embed":             c.ExAudioEmbed,
		"synonyms_str":               c.SynonymsStr,
		"antonyms_str":               c.AntonymsStr,
	}
}

// CardResult is everything produced for one request.
type CardResult struct {
	Request        AnalysisRequest
	UniqueFileName string
	Card           *EnrichedCard
	SentenceAudio  AudioClip
	AnkiTemplate   string
}
