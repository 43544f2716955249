package card

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/wordcard-api/internal/config"
	"github.com/phrazzld/wordcard-api/internal/domain"
)

// CreatedAtLayout is the minute-resolution timestamp stored on every card.
const CreatedAtLayout = "2006-01-02 15:04"

const playphraseSearchURL = "https://www.playphrase.me/#/search?q="

// Full-width parentheses delimiting the translation in an example sentence.
const (
	openParen  = "（"
	closeParen = "）"
)

// Input carries everything Format needs besides the analysis itself.
type Input struct {
	Sentence       string
	Word           string
	UniqueFileName string
	Analysis       *domain.WordAnalysis
	ExampleAudio   domain.AudioClip
}

// Formatter derives the display and linking fields of a card.
type Formatter struct {
	vault  string
	folder string
	now    func() time.Time
	newID  func() string
}

// NewFormatter creates a Formatter using the wall clock and random job ids.
func NewFormatter(cfg config.CardConfig) *Formatter {
	return &Formatter{
		vault:  cfg.ObsidianVault,
		folder: cfg.ObsidianFolder,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
}

// Format merges in.Analysis with its derived fields.
func (f *Formatter) Format(in Input) *domain.EnrichedCard {
	analysis := *in.Analysis
	analysis.Normalize()

	exEnglish, exJapanese := SplitExample(analysis.ExampleSentence)
	emphasized := Emphasize(exEnglish, in.Word)

	return &domain.EnrichedCard{
		WordAnalysis: analysis,

		JobID:                   f.newID(),
		CreatedAt:               f.now().Format(CreatedAtLayout),
		ObsidianURI:             ObsidianURI(f.vault, f.folder, in.Word),
		PlayphraseMeURL:         PlayphraseURL(in.Word),
		ImageEmbed:              "![[" + in.UniqueFileName + ".jpeg]]",
		HighlightedSentence:     HighlightSentence(in.Sentence, in.Word),
		RatingStar:              RatingStars(analysis.FrequencyRating),
		TargetDeck:              TargetDeck(analysis.FrequencyRating),
		FormattedExEnglish:      emphasized,
		ExSentenceEnglish:       exEnglish,
		ExSentenceJapanese:      exJapanese,
		FormattedExSentence:     emphasized + " (" + exJapanese + ")",
		FormattedExEnglishAudio: emphasized + " " + in.ExampleAudio.Embed,
		ExAudioBase64:           in.ExampleAudio.Base64,
		ExAudioEmbed:            in.ExampleAudio.Embed,
		SynonymsStr:             JoinList(analysis.Synonyms),
		AntonymsStr:             JoinList(analysis.Antonyms),
	}
}

// UniqueFileName returns word suffixed with six random hex characters.
func UniqueFileName(word string) string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return word + "-" + id[:6]
}

// ExampleLabel is the audio label of the example sentence clip.
func ExampleLabel(uniqueFileName string) string {
	return uniqueFileName + "_example"
}

// RatingStars renders a rating as repeated stars.
func RatingStars(rating int) string {
	if rating <= 0 {
		return ""
	}
	return strings.Repeat("★", rating)
}

// TargetDeck picks the Anki deck for a frequency rating.
func TargetDeck(rating int) string {
	switch rating {
	case 5:
		return "Immersion::01-Frequent"
	case 3, 4:
		return "Immersion::02-Common"
	case 1, 2:
		return "Immersion::03-Rare"
	default:
		return "Immersion"
	}
}

// SplitExample separates "english（japanese）" into its two parts. Without
// both full-width parentheses the whole string is the English part.
func SplitExample(example string) (english, japanese string) {
	if !strings.Contains(example, openParen) || !strings.Contains(example, closeParen) {
		return example, ""
	}
	english, japanese, _ = strings.Cut(example, openParen)
	return english, strings.ReplaceAll(japanese, closeParen, "")
}

// Emphasize italicizes sentence and bolds every occurrence of word in it.
func Emphasize(sentence, word string) string {
	if word != "" {
		sentence = strings.ReplaceAll(sentence, word, "**"+word+"**")
	}
	return "*" + sentence + "*"
}

// HighlightSentence marks every occurrence of word as ==word==.
func HighlightSentence(sentence, word string) string {
	if word == "" {
		return sentence
	}
	return strings.ReplaceAll(sentence, word, "=="+word+"==")
}

// JoinList joins items with ", ".
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}

// ObsidianURI opens the note for word in the given vault folder.
func ObsidianURI(vault, folder, word string) string {
	return "obsidian://open?vault=" + quote(vault) + "&file=" + quote(folder) + "%2F" + quote(word)
}

// PlayphraseURL searches playphrase.me for word.
func PlayphraseURL(word string) string {
	return playphraseSearchURL + quote(word)
}

// quote percent-encodes everything except unreserved characters and '/'.
func quote(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	return strings.ReplaceAll(escaped, "%2F", "/")
}
