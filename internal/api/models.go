package api

import (
	"github.com/phrazzld/wordcard-api/internal/domain"
)

// CreateCardRequest defines the payload for the card creation endpoint.
// Pointer fields distinguish an absent key from an empty string; only
// absence is rejected.
type CreateCardRequest struct {
	Sentence *string `json:"sentence" validate:"required"`
	Word     *string `json:"word"     validate:"required"`
	Tag      *string `json:"tag"      validate:"required"`
}

// toDomain converts a validated request into the domain type.
func (r CreateCardRequest) toDomain() domain.AnalysisRequest {
	return domain.AnalysisRequest{
		Sentence: *r.Sentence,
		Word:     *r.Word,
		Tag:      *r.Tag,
	}
}

// cardToResponse flattens a generated card into the response object: every
// enriched card key plus the request echo, the sentence audio and the
// rendered template.
func cardToResponse(result *domain.CardResult) map[string]any {
	resp := result.Card.Fields()
	resp["sentence"] = result.Request.Sentence
	resp["word"] = result.Request.Word
	resp["tag"] = result.Request.Tag
	resp["unique_file_name"] = result.UniqueFileName
	resp["audio_base64"] = result.SentenceAudio.Base64
	resp["audio_embed"] = result.SentenceAudio.Embed
	resp["anki_template"] = result.AnkiTemplate
	return resp
}
