package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/phrazzld/wordcard-api/internal/config"
	"github.com/phrazzld/wordcard-api/internal/domain"
	"github.com/phrazzld/wordcard-api/internal/redact"
)

// contentGenerator is the subset of *genai.Models used by the Analyzer.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Analyzer sends analysis prompts to Gemini and decodes the structured
// WordAnalysis it returns.
type Analyzer struct {
	// logger is used for structured logging
	logger *slog.Logger

	// model is the name of the Gemini model to use
	model string

	// timeout bounds a single model call
	timeout time.Duration

	// generator returns the process-wide client, constructing it on first use
	generator func() (contentGenerator, error)
}

// NewAnalyzer creates an Analyzer. The Gemini client itself is built lazily
// on the first call and then shared by every concurrent request.
func NewAnalyzer(logger *slog.Logger, cfg config.LLMConfig) (*Analyzer, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", ErrInvalidConfig)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}

	return newAnalyzer(logger, cfg, func() (contentGenerator, error) {
		client, err := genai.NewClient(context.Background(), clientConfig)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
				ErrInvalidConfig, redact.Error(err))
		}
		return client.Models, nil
	})
}

func newAnalyzer(
	logger *slog.Logger,
	cfg config.LLMConfig,
	construct func() (contentGenerator, error),
) (*Analyzer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", ErrInvalidConfig)
	}

	return &Analyzer{
		logger:    logger.With(slog.String("component", "gemini_analyzer")),
		model:     cfg.ModelName,
		timeout:   cfg.Timeout,
		generator: sync.OnceValues(construct),
	}, nil
}

// Analyze sends prompt to the model and returns the decoded analysis.
// Errors wrap ErrInvalidResponse when the reply does not match the schema and
// ErrContentBlocked when safety filters stopped generation.
func (a *Analyzer) Analyze(ctx context.Context, prompt string) (*domain.WordAnalysis, error) {
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	generator, err := a.generator()
	if err != nil {
		return nil, err
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := time.Now()
	a.logger.DebugContext(ctx, "calling Gemini API",
		slog.String("model", a.model),
		slog.Int("prompt_length", len(prompt)))

	resp, err := generator.GenerateContent(ctx, a.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   wordAnalysisSchema,
	})
	if err != nil {
		a.logger.ErrorContext(ctx, "Gemini API call failed",
			slog.String("error", redact.Error(err)),
			slog.Duration("elapsed", time.Since(start)))
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		a.logger.WarnContext(ctx, "unusable Gemini response", slog.String("error", err.Error()))
		return nil, err
	}

	analysis, err := decodeAnalysis(text)
	if err != nil {
		a.logger.WarnContext(ctx, "failed to decode word analysis",
			slog.String("error", err.Error()),
			slog.Int("response_length", len(text)))
		return nil, err
	}

	a.logger.DebugContext(ctx, "word analysis received",
		slog.Int("frequency_rating", analysis.FrequencyRating),
		slog.Duration("elapsed", time.Since(start)))
	return analysis, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", ErrContentBlocked
	}
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty content", ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: no text in response", ErrInvalidResponse)
	}
	return sb.String(), nil
}

// decodeAnalysis parses text as a WordAnalysis. All schema keys must be
// present and frequency_rating must be an integer in 1..5.
func decodeAnalysis(text string) (*domain.WordAnalysis, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("%w: response is not a JSON object: %v", ErrInvalidResponse, err)
	}

	var missing []string
	for _, key := range domain.WordAnalysisFields {
		if _, ok := raw[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing fields %s", ErrInvalidResponse, strings.Join(missing, ", "))
	}

	var analysis domain.WordAnalysis
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if err := analysis.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	analysis.Normalize()
	return &analysis, nil
}
