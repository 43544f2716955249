package card

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/wordcard-api/internal/config"
	"github.com/phrazzld/wordcard-api/internal/domain"
)

func fixedFormatter() *Formatter {
	f := NewFormatter(config.CardConfig{ObsidianVault: "anki-vault", ObsidianFolder: "AnkiCard"})
	f.now = func() time.Time { return time.Date(2026, 3, 7, 9, 5, 42, 0, time.Local) }
	f.newID = func() string { return "00000000-0000-4000-8000-000000000000" }
	return f
}

func TestRatingStars(t *testing.T) {
	assert.Equal(t, "", RatingStars(0))
	assert.Equal(t, "", RatingStars(-2))
	assert.Equal(t, "★", RatingStars(1))
	assert.Equal(t, "★★★★★", RatingStars(5))
}

func TestTargetDeck(t *testing.T) {
	tests := []struct {
		rating int
		want   string
	}{
		{5, "Immersion::01-Frequent"},
		{4, "Immersion::02-Common"},
		{3, "Immersion::02-Common"},
		{2, "Immersion::03-Rare"},
		{1, "Immersion::03-Rare"},
		{0, "Immersion"},
		{6, "Immersion"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TargetDeck(tt.rating), "rating %d", tt.rating)
	}
}

func TestSplitExample(t *testing.T) {
	tests := []struct {
		name        string
		example     string
		wantEnglish string
		wantJapan   string
	}{
		{"both parens", "I love it（私はそれが好きです）", "I love it", "私はそれが好きです"},
		{"no parens", "I love it", "I love it", ""},
		{"open only", "I love it（私は", "I love it（私は", ""},
		{"close only", "I love it）", "I love it）", ""},
		{"ascii parens ignored", "I love it (好き)", "I love it (好き)", ""},
		{"split on first open", "A（B（C）", "A", "B（C"},
		{"every close removed", "A（B）C）", "A", "BC"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			english, japanese := SplitExample(tt.example)
			assert.Equal(t, tt.wantEnglish, english)
			assert.Equal(t, tt.wantJapan, japanese)
		})
	}
}

func TestEmphasize(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		word     string
		want     string
	}{
		{"once", "I love it", "love", "*I **love** it*"},
		{"twice", "love me, love my dog", "love", "***love** me, **love** my dog*"},
		{"absent", "I like it", "love", "*I like it*"},
		{"case sensitive", "Love is love", "love", "*Love is **love***"},
		{"empty word", "I love it", "", "*I love it*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Emphasize(tt.sentence, tt.word))
		})
	}
}

func TestHighlightSentence(t *testing.T) {
	assert.Equal(t, "I ==love== it", HighlightSentence("I love it", "love"))
	assert.Equal(t, "==go== and ==go==", HighlightSentence("go and go", "go"))
	assert.Equal(t, "I love it", HighlightSentence("I love it", ""))
}

func TestJoinList(t *testing.T) {
	assert.Equal(t, "", JoinList(nil))
	assert.Equal(t, "", JoinList([]string{}))
	assert.Equal(t, "adore", JoinList([]string{"adore"}))
	assert.Equal(t, "adore, like", JoinList([]string{"adore", "like"}))
	assert.Equal(t, "adore, like, cherish", JoinList([]string{"adore", "like", "cherish"}))
}

func TestLinks(t *testing.T) {
	assert.Equal(t, "obsidian://open?vault=anki-vault&file=AnkiCard%2Flove",
		ObsidianURI("anki-vault", "AnkiCard", "love"))
	assert.Equal(t, "obsidian://open?vault=anki-vault&file=AnkiCard%2Fbreak%20a%20leg",
		ObsidianURI("anki-vault", "AnkiCard", "break a leg"))
	assert.Equal(t, "https://www.playphrase.me/#/search?q=break%20a%20leg", PlayphraseURL("break a leg"))
}

func TestQuote(t *testing.T) {
	tests := map[string]string{
		"love":        "love",
		"a b":         "a%20b",
		"and/or":      "and/or",
		"rock&roll":   "rock%26roll",
		"1+1":         "1%2B1",
		"don't":       "don%27t",
		"café":        "caf%C3%A9",
		"well-being_": "well-being_",
	}

	for in, want := range tests {
		assert.Equal(t, want, quote(in), "quote(%q)", in)
	}
}

func TestUniqueFileName(t *testing.T) {
	name := UniqueFileName("love")
	assert.Regexp(t, regexp.MustCompile(`^love-[0-9a-f]{6}$`), name)
	assert.NotEqual(t, name, UniqueFileName("love"))
	assert.Equal(t, "love-1a2b3c_example", ExampleLabel("love-1a2b3c"))
}

func TestFormat(t *testing.T) {
	analysis := &domain.WordAnalysis{
		ContextualTranslation: "大好き",
		FrequencyRating:       4,
		ExampleSentence:       "I love pizza and love pasta.（ピザもパスタも大好き）",
		Synonyms:              []string{"adore", "like"},
	}

	c := fixedFormatter().Format(Input{
		Sentence:       "I love it",
		Word:           "love",
		UniqueFileName: "love-1a2b3c",
		Analysis:       analysis,
		ExampleAudio:   domain.AudioClip{Base64: "QUJD", Embed: "![[love-1a2b3c_example.mp3]]"},
	})
	require.NotNil(t, c)

	assert.Equal(t, "00000000-0000-4000-8000-000000000000", c.JobID)
	assert.Equal(t, "2026-03-07 09:05", c.CreatedAt)
	assert.Equal(t, "obsidian://open?vault=anki-vault&file=AnkiCard%2Flove", c.ObsidianURI)
	assert.Equal(t, "https://www.playphrase.me/#/search?q=love", c.PlayphraseMeURL)
	assert.Equal(t, "![[love-1a2b3c.jpeg]]", c.ImageEmbed)
	assert.Equal(t, "I ==love== it", c.HighlightedSentence)
	assert.Equal(t, "★★★★", c.RatingStar)
	assert.Equal(t, "Immersion::02-Common", c.TargetDeck)
	assert.Equal(t, "I love pizza and love pasta.", c.ExSentenceEnglish)
	assert.Equal(t, "ピザもパスタも大好き", c.ExSentenceJapanese)
	assert.Equal(t, "*I **love** pizza and **love** pasta.*", c.FormattedExEnglish)
	assert.Equal(t, "*I **love** pizza and **love** pasta.* (ピザもパスタも大好き)", c.FormattedExSentence)
	assert.Equal(t, "*I **love** pizza and **love** pasta.* ![[love-1a2b3c_example.mp3]]", c.FormattedExEnglishAudio)
	assert.Equal(t, "QUJD", c.ExAudioBase64)
	assert.Equal(t, "![[love-1a2b3c_example.mp3]]", c.ExAudioEmbed)
	assert.Equal(t, "adore, like", c.SynonymsStr)
	assert.Equal(t, "", c.AntonymsStr)

	// The analysis itself is carried unchanged, with lists normalized.
	assert.Equal(t, "大好き", c.ContextualTranslation)
	assert.NotNil(t, c.Antonyms)
	assert.Nil(t, analysis.Antonyms, "input analysis must not be mutated")
}
