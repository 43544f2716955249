package gemini

import (
	"google.golang.org/genai"

	"github.com/phrazzld/wordcard-api/internal/domain"
)

func stringProp(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: description}
}

func listProp(description string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeArray,
		Description: description,
		Items:       &genai.Schema{Type: genai.TypeString},
	}
}

func float64Ptr(v float64) *float64 { return &v }

// wordAnalysisSchema is the structured-output schema matching domain.WordAnalysis.
// Every property is required; optional content is expressed as "" or [].
var wordAnalysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"contextual_translation": stringProp("[日本語必須] この場面での文章の意訳"),
		"precise_translation":    stringProp("[日本語必須] 単語の意味を正確に捉えた、文章の正確な日本語訳"),
		"frequency_rating": {
			Type:        genai.TypeInteger,
			Description: "単語の日常会話での出現頻度と学習上の重要度 (1-5)",
			Minimum:     float64Ptr(1),
			Maximum:     float64Ptr(5),
		},
		"ipa":                stringProp("単語の発音記号（アメリカ英語）"),
		"part_of_speech":     stringProp("[ENGLISH ONLY] 文章中での品詞"),
		"english_definition": stringProp("[ENGLISH ONLY] 中学・高校英語レベルでの簡潔な定義"),
		"japanese_meaning":   stringProp("[日本語必須] この文脈における単語の最も適切な日本語訳と簡潔な説明"),
		"example_sentence":   stringProp("[英語+日本語] 単語を使った簡単な例文「英語文（日本語訳）」形式"),
		"core_meaning":       stringProp("[日本語必須] 単語の核となる意味や語源的説明"),
		"antonyms":           listProp("[ENGLISH ONLY] 対義語のリスト（重要度順）"),
		"synonyms":           listProp("[ENGLISH ONLY] 類義語のリスト（最も近い意味順）"),
		"slang":              stringProp("[英語+日本語] 文中に含まれるスラング表現の説明"),
		"idioms":             stringProp("[英語+日本語] 文中に含まれる熟語・連語・群動詞・慣用句の説明"),
		"japanese_usage":     stringProp("[日本語必須] カタカナ英語や商品名としての馴染み"),
		"memory_aids":        stringProp("[日本語必須] 単語を覚えるためのコツや関連付け"),
		"terminology":        stringProp("[日本語必須] IT、プログラミング、マーケティングでの専門用語としての使われ方"),
		"explanation":        stringProp("[日本語必須] 英単語・英文の最終説明と総括"),
	},
	Required:         domain.WordAnalysisFields,
	PropertyOrdering: domain.WordAnalysisFields,
}
