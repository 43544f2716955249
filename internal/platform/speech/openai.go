package speech

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/phrazzld/wordcard-api/internal/config"
)

// OpenAIProvider implements Synthesizer using OpenAI TTS.
type OpenAIProvider struct {
	client  *openai.Client
	model   string
	voice   string
	speed   float64
	timeout time.Duration
}

// NewOpenAIProvider creates a new OpenAI TTS provider
func NewOpenAIProvider(cfg config.SpeechConfig) (*OpenAIProvider, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	return newOpenAIProvider(openai.DefaultConfig(cfg.OpenAIKey), cfg), nil
}

func newOpenAIProvider(clientConfig openai.ClientConfig, cfg config.SpeechConfig) *OpenAIProvider {
	return &OpenAIProvider{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   cfg.OpenAIModel,
		voice:   cfg.OpenAIVoice,
		speed:   cfg.OpenAISpeed,
		timeout: cfg.Timeout,
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Synthesize generates MP3 audio for text. The configured timeout covers
// the request and reading the audio body.
func (p *OpenAIProvider) Synthesize(ctx context.Context, text string) ([]byte, error) {
	ctx, cancel := withTimeout(ctx, p.timeout)
	defer cancel()

	req := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(p.model),
		Input:          text,
		Voice:          openai.SpeechVoice(p.voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
		Speed:          p.speed,
	}

	response, err := p.client.CreateSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	audio, err := io.ReadAll(response)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, ErrNoAudio
	}

	return audio, nil
}
