package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/wordcard-api/internal/card"
	"github.com/phrazzld/wordcard-api/internal/config"
	"github.com/phrazzld/wordcard-api/internal/platform/gemini"
	"github.com/phrazzld/wordcard-api/internal/platform/logger"
	"github.com/phrazzld/wordcard-api/internal/platform/notion"
	"github.com/phrazzld/wordcard-api/internal/platform/speech"
	"github.com/phrazzld/wordcard-api/internal/redact"
	"github.com/phrazzld/wordcard-api/internal/service"
	"github.com/phrazzld/wordcard-api/internal/task"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	cardService service.CardService

	// Archiving; both nil when disabled.
	archive    *notion.Client
	taskRunner *task.Runner
}

// appOptions adjusts wiring for the entry point in use.
type appOptions struct {
	// disableArchive skips the Notion archive even when configured.
	disableArchive bool
}

// loadAppConfig loads configuration and sets up the process logger.
func loadAppConfig(configFile string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFile(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"speech_provider", cfg.Speech.Provider,
		"archive_enabled", cfg.Archive.Enabled)

	return cfg, log, nil
}

// newApplication creates the production application from configuration.
func newApplication(cfg *config.Config, log *slog.Logger, opts appOptions) (*application, error) {
	analyzer, err := gemini.NewAnalyzer(log, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize word analyzer: %w", err)
	}
	log.Info("word analyzer initialized", "model", cfg.LLM.ModelName)

	synthesizer, err := speech.NewSynthesizer(log, cfg.Speech)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize speech synthesizer: %w", err)
	}
	log.Info("speech synthesizer initialized", "provider", synthesizer.Name())

	return assembleApplication(cfg, log, analyzer, synthesizer, opts)
}

// assembleApplication wires the card service around the given analyzer and
// synthesizer, adding the background archive when it is enabled.
func assembleApplication(
	cfg *config.Config,
	log *slog.Logger,
	analyzer service.Analyzer,
	synthesizer speech.Synthesizer,
	opts appOptions,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: log,
	}

	// Literal nils keep the service's archive interfaces nil when disabled.
	var (
		archiver task.Archiver
		runner   service.TaskRunner
	)
	if cfg.Archive.Enabled && !opts.disableArchive {
		app.archive = notion.NewClient(log, cfg.Archive)
		app.taskRunner = setupTaskRunner(cfg.Archive, log)
		archiver = app.archive
		runner = app.taskRunner

		if !app.archive.Enabled() {
			log.Warn("archive enabled without Notion credentials; saves will be skipped")
		}
	}

	var err error
	app.cardService, err = service.NewCardService(
		analyzer,
		synthesizer,
		card.NewFormatter(cfg.Card),
		archiver,
		runner,
		log,
	)
	if err != nil {
		app.cleanup(context.Background())
		return nil, fmt.Errorf("failed to create card service: %w", err)
	}

	log.Info("Application initialized successfully")
	return app, nil
}

// setupTaskRunner starts the background runner that executes archive writes.
func setupTaskRunner(cfg config.ArchiveConfig, log *slog.Logger) *task.Runner {
	runner := task.NewRunner(task.RunnerConfig{
		WorkerCount: cfg.WorkerCount,
		QueueSize:   cfg.QueueSize,
		TaskTimeout: cfg.Timeout,
	}, log.With("component", "task_runner"))

	runner.SetErrorHandler(func(t task.Task, err error) {
		log.Error("card archive failed",
			"task_id", t.ID(),
			"task_type", t.Type(),
			"error", redact.Error(err))
	})
	runner.Start()

	return runner
}

// cleanup drains pending archive writes and releases clients.
func (app *application) cleanup(ctx context.Context) {
	if app.taskRunner != nil {
		if err := app.taskRunner.Stop(ctx); err != nil {
			app.logger.Warn("archive queue not drained before shutdown", "error", err)
		}
	}

	if app.archive != nil {
		if err := app.archive.Close(); err != nil {
			app.logger.Error("Error closing Notion client", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
