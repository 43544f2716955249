package speech

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"resty.dev/v3"

	"github.com/phrazzld/wordcard-api/internal/config"
)

// maxChunkRunes is the longest text the translate_tts endpoint accepts per call.
const maxChunkRunes = 100

// GTranslateProvider speaks text through the Google Translate TTS endpoint.
type GTranslateProvider struct {
	httpClient *resty.Client
	language   string
	timeout    time.Duration
}

// NewGTranslateProvider creates a provider for cfg.GTranslateURL.
func NewGTranslateProvider(cfg config.SpeechConfig) *GTranslateProvider {
	client := resty.New()
	client.SetBaseURL(cfg.GTranslateURL)
	client.SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	return &GTranslateProvider{
		httpClient: client,
		language:   cfg.Language,
		timeout:    cfg.Timeout,
	}
}

// Name returns the provider name
func (p *GTranslateProvider) Name() string {
	return "gtranslate"
}

// Synthesize fetches each chunk of text in order and concatenates the MP3 data.
// One timeout budget is shared by all chunk requests.
func (p *GTranslateProvider) Synthesize(ctx context.Context, text string) ([]byte, error) {
	chunks := splitText(text, maxChunkRunes)
	if len(chunks) == 0 {
		return nil, ErrEmptyText
	}

	ctx, cancel := withTimeout(ctx, p.timeout)
	defer cancel()

	var audio []byte
	for i, chunk := range chunks {
		response, err := p.httpClient.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"ie":      "UTF-8",
				"q":       chunk,
				"tl":      p.language,
				"client":  "tw-ob",
				"total":   strconv.Itoa(len(chunks)),
				"idx":     strconv.Itoa(i),
				"textlen": strconv.Itoa(utf8.RuneCountInString(chunk)),
			}).
			Get("/translate_tts")
		if err != nil {
			return nil, fmt.Errorf("translate_tts request: %w", err)
		}
		if response.IsError() {
			return nil, fmt.Errorf("translate_tts response error %d: %s", response.StatusCode(), response.String())
		}

		body := response.Bytes()
		if len(body) == 0 {
			return nil, ErrNoAudio
		}
		audio = append(audio, body...)
	}

	return audio, nil
}

// splitText breaks text into chunks of at most limit runes, preferring word
// boundaries. Words longer than limit are cut.
func splitText(text string, limit int) []string {
	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	for _, word := range strings.Fields(text) {
		runes := []rune(word)
		for len(runes) > limit {
			flush()
			chunks = append(chunks, string(runes[:limit]))
			runes = runes[limit:]
		}

		wordLen := len(runes)
		if currentLen > 0 && currentLen+1+wordLen > limit {
			flush()
		}
		if currentLen > 0 {
			current.WriteByte(' ')
			currentLen++
		}
		current.WriteString(string(runes))
		currentLen += wordLen
	}
	flush()

	return chunks
}
