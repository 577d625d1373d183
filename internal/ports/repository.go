package ports

import (
	"context"
	"errors"

	"github.com/Krosebrook/Flash-n-Frame/internal/domain/studio"
)

var (
	ErrGenerationNotFound = errors.New("generation not found")
	ErrTaskNotFound       = errors.New("task not found")
)

// GenerationFilter narrows a history listing.
type GenerationFilter struct {
	Kind  studio.ArtifactKind
	Limit int
}

// GenerationRepository persists generation history entries.
type GenerationRepository interface {
	Create(ctx context.Context, gen studio.Generation) error
	Get(ctx context.Context, id string) (studio.Generation, error)
	List(ctx context.Context, filter GenerationFilter) ([]studio.Generation, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// TaskRepository persists task list entries.
type TaskRepository interface {
	Create(ctx context.Context, task studio.Task) error
	Get(ctx context.Context, id string) (studio.Task, error)
	Update(ctx context.Context, task studio.Task) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]studio.Task, error)
}
