package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/phrazzld/wordcard-api/internal/card"
	"github.com/phrazzld/wordcard-api/internal/domain"
	"github.com/phrazzld/wordcard-api/internal/platform/speech"
	"github.com/phrazzld/wordcard-api/internal/prompt"
	"github.com/phrazzld/wordcard-api/internal/redact"
	"github.com/phrazzld/wordcard-api/internal/task"
)

// Analyzer produces a WordAnalysis from an analysis prompt.
type Analyzer interface {
	Analyze(ctx context.Context, prompt string) (*domain.WordAnalysis, error)
}

// TaskRunner defines the interface for submitting background tasks
type TaskRunner interface {
	// Submit adds a task to the processing queue without blocking
	Submit(task task.Task) error
}

// CardService turns one request into a finished card.
type CardService interface {
	// Generate runs analysis and speech synthesis, formats the card and
	// renders its template. When archiving is enabled the card is handed to
	// the background runner; archive failures never reach the caller.
	Generate(ctx context.Context, req domain.AnalysisRequest) (*domain.CardResult, error)
}

// cardServiceImpl implements the CardService interface
type cardServiceImpl struct {
	analyzer    Analyzer
	synthesizer speech.Synthesizer
	formatter   *card.Formatter
	archiver    task.Archiver
	runner      TaskRunner
	logger      *slog.Logger
	newFileName func(word string) string
}

// NewCardService creates a new CardService. archiver and runner are both
// nil when archiving is disabled; passing only one of them is an error.
func NewCardService(
	analyzer Analyzer,
	synthesizer speech.Synthesizer,
	formatter *card.Formatter,
	archiver task.Archiver,
	runner TaskRunner,
	logger *slog.Logger,
) (CardService, error) {
	if analyzer == nil {
		return nil, errors.New("analyzer cannot be nil")
	}
	if synthesizer == nil {
		return nil, errors.New("synthesizer cannot be nil")
	}
	if formatter == nil {
		return nil, errors.New("formatter cannot be nil")
	}
	if (archiver == nil) != (runner == nil) {
		return nil, errors.New("archiver and runner must be set together")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &cardServiceImpl{
		analyzer:    analyzer,
		synthesizer: synthesizer,
		formatter:   formatter,
		archiver:    archiver,
		runner:      runner,
		logger:      logger.With(slog.String("component", "card_service")),
		newFileName: card.UniqueFileName,
	}, nil
}

// Generate implements CardService.
func (s *cardServiceImpl) Generate(ctx context.Context, req domain.AnalysisRequest) (*domain.CardResult, error) {
	start := time.Now()
	log := s.logger.With(slog.String("word", req.Word), slog.String("tag", req.Tag))

	text, err := prompt.Build(req.Sentence, req.Word, req.Tag)
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}

	name := s.newFileName(req.Word)

	// Analysis and sentence audio are independent; the first failure cancels the other.
	var (
		analysis      *domain.WordAnalysis
		sentenceAudio domain.AudioClip
	)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		analysis, err = s.analyzer.Analyze(gctx, text)
		if err != nil {
			return fmt.Errorf("analyze word: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		sentenceAudio, err = speech.Clip(gctx, s.synthesizer, req.Sentence, name)
		return err
	})

	if err := g.Wait(); err != nil {
		log.ErrorContext(ctx, "card generation failed", slog.String("error", redact.Error(err)))
		return nil, err
	}

	exampleEnglish, _ := card.SplitExample(analysis.ExampleSentence)
	exampleAudio, err := speech.Clip(ctx, s.synthesizer, exampleEnglish, card.ExampleLabel(name))
	if err != nil {
		log.ErrorContext(ctx, "example audio failed", slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("example audio: %w", err)
	}

	enriched := s.formatter.Format(card.Input{
		Sentence:       req.Sentence,
		Word:           req.Word,
		UniqueFileName: name,
		Analysis:       analysis,
		ExampleAudio:   exampleAudio,
	})

	fields := enriched.Fields()
	fields["word"] = req.Word
	fields["tag"] = req.Tag
	fields["audio_embed"] = sentenceAudio.Embed

	template, err := card.Render(fields)
	if err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	s.dispatchArchive(ctx, log, enriched, req)

	log.InfoContext(ctx, "card generated",
		slog.String("job_id", enriched.JobID),
		slog.Int("frequency_rating", enriched.FrequencyRating),
		slog.Duration("elapsed", time.Since(start)))

	return &domain.CardResult{
		Request:        req,
		UniqueFileName: name,
		Card:           enriched,
		SentenceAudio:  sentenceAudio,
		AnkiTemplate:   template,
	}, nil
}

// dispatchArchive hands the card to the background runner. A full or closed
// queue drops the archive write.
func (s *cardServiceImpl) dispatchArchive(
	ctx context.Context,
	log *slog.Logger,
	enriched *domain.EnrichedCard,
	req domain.AnalysisRequest,
) {
	if s.runner == nil {
		return
	}

	if err := s.runner.Submit(task.NewArchiveTask(s.archiver, enriched, req)); err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, task.ErrQueueFull) {
			level = slog.LevelError
		}
		log.Log(ctx, level, "archive write dropped",
			slog.String("job_id", enriched.JobID),
			slog.String("error", err.Error()))
	}
}
