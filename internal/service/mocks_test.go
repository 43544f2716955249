package service

import (
	"context"
	"sync"

	"github.com/phrazzld/wordcard-api/internal/domain"
	"github.com/phrazzld/wordcard-api/internal/task"
)

// MockAnalyzer is a mock implementation of Analyzer
type MockAnalyzer struct {
	AnalyzeFn func(ctx context.Context, prompt string) (*domain.WordAnalysis, error)
}

func (m *MockAnalyzer) Analyze(ctx context.Context, prompt string) (*domain.WordAnalysis, error) {
	return m.AnalyzeFn(ctx, prompt)
}

// MockSynthesizer is a mock implementation of speech.Synthesizer that
// records every text it was asked to speak.
type MockSynthesizer struct {
	SynthesizeFn func(ctx context.Context, text string) ([]byte, error)

	mu    sync.Mutex
	texts []string
}

func (m *MockSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	m.mu.Lock()
	m.texts = append(m.texts, text)
	m.mu.Unlock()
	return m.SynthesizeFn(ctx, text)
}

func (m *MockSynthesizer) Name() string { return "mock" }

func (m *MockSynthesizer) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.texts...)
}

// MockTaskRunner is a mock implementation of TaskRunner
type MockTaskRunner struct {
	SubmitFn  func(t task.Task) error
	Submitted []task.Task
}

func (m *MockTaskRunner) Submit(t task.Task) error {
	m.Submitted = append(m.Submitted, t)
	if m.SubmitFn != nil {
		return m.SubmitFn(t)
	}
	return nil
}

// MockArchiver is a mock implementation of task.Archiver
type MockArchiver struct {
	SaveFn func(ctx context.Context, card *domain.EnrichedCard, req domain.AnalysisRequest) error
}

func (m *MockArchiver) Save(ctx context.Context, card *domain.EnrichedCard, req domain.AnalysisRequest) error {
	return m.SaveFn(ctx, card, req)
}
