package task

import (
	"context"

	"github.com/google/uuid"

	"github.com/phrazzld/wordcard-api/internal/domain"
)

// Archiver persists a finished card somewhere outside this process.
type Archiver interface {
	Save(ctx context.Context, card *domain.EnrichedCard, req domain.AnalysisRequest) error
}

// ArchiveTask writes one card through an Archiver.
type ArchiveTask struct {
	id       uuid.UUID
	archiver Archiver
	card     *domain.EnrichedCard
	request  domain.AnalysisRequest
}

// NewArchiveTask creates an ArchiveTask. The card must not be modified after
// submission; the task reads it from another goroutine.
func NewArchiveTask(archiver Archiver, card *domain.EnrichedCard, req domain.AnalysisRequest) *ArchiveTask {
	return &ArchiveTask{
		id:       uuid.New(),
		archiver: archiver,
		card:     card,
		request:  req,
	}
}

// ID returns the task's unique identifier
func (t *ArchiveTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *ArchiveTask) Type() string {
	return TaskTypeArchive
}

// Execute saves the card.
func (t *ArchiveTask) Execute(ctx context.Context) error {
	return t.archiver.Save(ctx, t.card, t.request)
}
