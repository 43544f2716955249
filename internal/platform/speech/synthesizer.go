package speech

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/wordcard-api/internal/config"
	"github.com/phrazzld/wordcard-api/internal/domain"
)

// Error definitions for the speech package.
var (
	// ErrEmptyText is returned when there is nothing to speak.
	ErrEmptyText = errors.New("no text to speak")

	// ErrNoAudio is returned when a backend answers without audio data.
	ErrNoAudio = errors.New("no audio data received")

	// ErrUnavailable is returned while the circuit breaker is open.
	ErrUnavailable = errors.New("speech backend unavailable")

	// ErrUnknownProvider is returned for an unsupported provider name.
	ErrUnknownProvider = errors.New("unknown speech provider")
)

// Synthesizer turns text into MP3 audio held in memory.
type Synthesizer interface {
	// Synthesize returns the MP3 bytes for text.
	Synthesize(ctx context.Context, text string) ([]byte, error)

	// Name returns the provider name
	Name() string
}

// NewSynthesizer builds the provider selected by cfg.Provider and wraps it
// in a circuit breaker.
func NewSynthesizer(logger *slog.Logger, cfg config.SpeechConfig) (Synthesizer, error) {
	var provider Synthesizer
	switch cfg.Provider {
	case "gtranslate":
		provider = NewGTranslateProvider(cfg)
	case "openai":
		p, err := NewOpenAIProvider(cfg)
		if err != nil {
			return nil, err
		}
		provider = p
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}

	return NewBreakerSynthesizer(logger, provider, cfg), nil
}

// Clip synthesizes text and returns it as an inline clip. label names the
// embed reference only; nothing is written to disk.
func Clip(ctx context.Context, s Synthesizer, text, label string) (domain.AudioClip, error) {
	if strings.TrimSpace(text) == "" {
		return domain.AudioClip{}, ErrEmptyText
	}

	audio, err := s.Synthesize(ctx, text)
	if err != nil {
		return domain.AudioClip{}, fmt.Errorf("%s speech synthesis failed: %w", s.Name(), err)
	}

	return domain.AudioClip{
		Base64: base64.StdEncoding.EncodeToString(audio),
		Embed:  EmbedRef(label),
	}, nil
}

// EmbedRef returns the note-embed reference for an audio label.
func EmbedRef(label string) string {
	return "![[" + label + ".mp3]]"
}

// withTimeout bounds a whole Synthesize call. A zero timeout leaves ctx as is.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
