package task

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/wordcard-api/internal/platform/logger"
)

func TestNewRunner_Defaults(t *testing.T) {
	r := NewRunner(RunnerConfig{WorkerCount: 0, QueueSize: -1}, setupTestLogger())
	assert.Equal(t, 1, r.config.WorkerCount)
	assert.Equal(t, 1, r.config.QueueSize)

	d := DefaultRunnerConfig()
	assert.Equal(t, 2, d.WorkerCount)
	assert.Equal(t, 100, d.QueueSize)
}

func TestRunner_ExecutesSubmittedTasks(t *testing.T) {
	r := NewRunner(RunnerConfig{WorkerCount: 3, QueueSize: 10}, setupTestLogger())
	r.Start()

	var executed atomic.Int32
	for i := 0; i < 10; i++ {
		require.NoError(t, r.Submit(NewMockTask(func(context.Context) error {
			executed.Add(1)
			return nil
		})))
	}

	require.NoError(t, r.Stop(context.Background()))
	assert.Equal(t, int32(10), executed.Load())
}

func TestRunner_SubmitDoesNotBlockWhenFull(t *testing.T) {
	r := NewRunner(RunnerConfig{WorkerCount: 1, QueueSize: 1}, setupTestLogger())
	// Not started: nothing drains the queue.

	require.NoError(t, r.Submit(NewMockTask(noop)))

	done := make(chan error, 1)
	go func() { done <- r.Submit(NewMockTask(noop)) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrQueueFull)
	case <-time.After(time.Second):
		t.Fatal("Submit blocked on a full queue")
	}
}

func TestRunner_SubmitAfterStop(t *testing.T) {
	r := NewRunner(DefaultRunnerConfig(), setupTestLogger())
	r.Start()
	require.NoError(t, r.Stop(context.Background()))

	assert.ErrorIs(t, r.Submit(NewMockTask(noop)), ErrQueueClosed)
}

func TestRunner_ErrorHandler(t *testing.T) {
	r := NewRunner(RunnerConfig{WorkerCount: 1, QueueSize: 2}, setupTestLogger())

	var mu sync.Mutex
	var failures []error
	r.SetErrorHandler(func(task Task, err error) {
		mu.Lock()
		defer mu.Unlock()
		failures = append(failures, err)
	})
	r.Start()

	boom := errors.New("archive down")
	require.NoError(t, r.Submit(NewMockTask(func(context.Context) error { return boom })))
	require.NoError(t, r.Submit(NewMockTask(func(context.Context) error { panic("bad task") })))
	require.NoError(t, r.Stop(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, failures, 2)
	assert.ErrorIs(t, failures[0], boom)
	assert.Contains(t, failures[1].Error(), "bad task")
}

func TestRunner_DefaultErrorHandlerLogs(t *testing.T) {
	log, buf := logger.NewTestLogger(t)
	r := NewRunner(RunnerConfig{WorkerCount: 1, QueueSize: 1}, log)
	r.Start()

	require.NoError(t, r.Submit(NewMockTask(func(context.Context) error { return errors.New("nope") })))
	require.NoError(t, r.Stop(context.Background()))

	assert.True(t, buf.HasMessage("task execution failed"))
}

func TestRunner_TaskTimeout(t *testing.T) {
	r := NewRunner(RunnerConfig{WorkerCount: 1, QueueSize: 1, TaskTimeout: 20 * time.Millisecond}, setupTestLogger())

	var got error
	r.SetErrorHandler(func(_ Task, err error) { got = err })
	r.Start()

	require.NoError(t, r.Submit(NewMockTask(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})))
	require.NoError(t, r.Stop(context.Background()))

	assert.ErrorIs(t, got, context.DeadlineExceeded)
}

func TestRunner_StopDeadlineCancelsInFlight(t *testing.T) {
	r := NewRunner(RunnerConfig{WorkerCount: 1, QueueSize: 1}, setupTestLogger())
	r.Start()

	started := make(chan struct{})
	var cancelled atomic.Bool
	require.NoError(t, r.Submit(NewMockTask(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		cancelled.Store(true)
		return ctx.Err()
	})))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := r.Stop(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, cancelled.Load())
}
