package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// RunnerConfig holds configuration for the task runner
type RunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int

	// TaskTimeout bounds a single task execution. Zero means no limit.
	TaskTimeout time.Duration
}

// DefaultRunnerConfig returns a RunnerConfig with reasonable defaults
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		WorkerCount: 2,
		QueueSize:   100,
		TaskTimeout: 30 * time.Second,
	}
}

// Runner executes tasks in the background, detached from the request that
// submitted them. Nothing is persisted: tasks still queued when the process
// dies are lost.
type Runner struct {
	queue      *Queue
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     RunnerConfig
	logger     *slog.Logger
	errHandler func(task Task, err error)
	startOnce  sync.Once
}

// NewRunner creates a new Runner. Workers do not run until Start.
func NewRunner(config RunnerConfig, logger *slog.Logger) *Runner {
	if config.WorkerCount <= 0 {
		logger.Warn("invalid worker count specified, using default",
			"specified_count", config.WorkerCount,
			"default_count", 1)
		config.WorkerCount = 1
	}
	if config.QueueSize <= 0 {
		config.QueueSize = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		queue:      NewQueue(config.QueueSize, logger),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger,
		errHandler: func(task Task, err error) {
			// Default error handler just logs the error
			logger.Error("task execution failed",
				"task_id", task.ID(),
				"task_type", task.Type(),
				"error", err)
		},
	}
}

// SetErrorHandler allows setting a custom error handler function.
// It must be called before Start.
func (r *Runner) SetErrorHandler(handler func(task Task, err error)) {
	r.errHandler = handler
}

// Submit queues task without blocking the caller.
func (r *Runner) Submit(task Task) error {
	if err := r.queue.Enqueue(task); err != nil {
		return fmt.Errorf("submit %s task: %w", task.Type(), err)
	}
	return nil
}

// Start launches the worker goroutines. Calling it more than once is a no-op.
func (r *Runner) Start() {
	r.startOnce.Do(func() {
		for i := 0; i < r.config.WorkerCount; i++ {
			r.wg.Add(1)
			go r.worker(i)
		}
		r.logger.Info("task runner started",
			"worker_count", r.config.WorkerCount,
			"queue_size", r.config.QueueSize)
	})
}

// Stop rejects new tasks and waits for queued and in-flight tasks to finish.
// If ctx expires first, running tasks are cancelled and ctx's error returned.
func (r *Runner) Stop(ctx context.Context) error {
	r.queue.Close()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.cancelFunc()
		r.logger.Info("task runner stopped")
		return nil
	case <-ctx.Done():
		r.cancelFunc()
		<-done
		r.logger.Warn("task runner stopped before queue drained", "error", ctx.Err())
		return ctx.Err()
	}
}

// worker processes tasks until the queue is closed and empty
func (r *Runner) worker(id int) {
	defer r.wg.Done()

	r.logger.Debug("starting worker", "worker_id", id)
	for task := range r.queue.Channel() {
		r.processTask(task, id)
	}
	r.logger.Debug("task channel closed, stopping worker", "worker_id", id)
}

// processTask handles execution of a single task
func (r *Runner) processTask(task Task, workerID int) {
	logger := r.logger.With(
		"task_id", task.ID(),
		"task_type", task.Type(),
		"worker_id", workerID,
	)

	ctx := r.ctx
	if r.config.TaskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.TaskTimeout)
		defer cancel()
	}

	// A panicking task must not take the worker, or the server, down with it.
	defer func() {
		if p := recover(); p != nil {
			logger.Error("task panicked", "panic", fmt.Sprint(p))
			r.errHandler(task, fmt.Errorf("task panicked: %v", p))
		}
	}()

	start := time.Now()
	logger.Debug("processing task")

	if err := task.Execute(ctx); err != nil {
		r.errHandler(task, err)
		return
	}

	logger.Info("task completed successfully", "duration_ms", time.Since(start).Milliseconds())
}
