package speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sony/gobreaker"

	"github.com/phrazzld/wordcard-api/internal/config"
	"github.com/phrazzld/wordcard-api/internal/redact"
)

// BreakerSynthesizer fails fast while its provider keeps failing.
type BreakerSynthesizer struct {
	provider Synthesizer
	breaker  *gobreaker.CircuitBreaker
	logger   *slog.Logger
}

// NewBreakerSynthesizer wraps provider. The breaker opens after
// cfg.BreakerMaxFailures consecutive failures and half-opens after
// cfg.BreakerOpenTimeout.
func NewBreakerSynthesizer(logger *slog.Logger, provider Synthesizer, cfg config.SpeechConfig) *BreakerSynthesizer {
	logger = logger.With(slog.String("component", "speech"), slog.String("provider", provider.Name()))
	maxFailures := cfg.BreakerMaxFailures

	settings := gobreaker.Settings{
		Name:        "speech-" + provider.Name(),
		MaxRequests: 1,
		Timeout:     cfg.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// A request cancelled by its caller says nothing about backend health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("speech circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}

	return &BreakerSynthesizer{
		provider: provider,
		breaker:  gobreaker.NewCircuitBreaker(settings),
		logger:   logger,
	}
}

// Name returns the wrapped provider name
func (b *BreakerSynthesizer) Name() string {
	return b.provider.Name()
}

// Synthesize calls the provider through the breaker.
func (b *BreakerSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	result, err := b.breaker.Execute(func() (interface{}, error) {
		return b.provider.Synthesize(ctx, text)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		b.logger.WarnContext(ctx, "speech synthesis failed", slog.String("error", redact.Error(err)))
		return nil, err
	}

	return result.([]byte), nil
}
