// Package studio implements the generation workflows: turning a
// repository, an article, or an uploaded image into a visual artifact,
// plus the history and task-list operations around them.
package studio

import (
	"time"

	"github.com/google/uuid"

	"github.com/Krosebrook/Flash-n-Frame/internal/accel"
	"github.com/Krosebrook/Flash-n-Frame/internal/ports"
)

type Service struct {
	generations ports.GenerationRepository
	tasks       ports.TaskRepository
	uow         ports.UnitOfWork
	generator   ports.Generator
	source      ports.SourceHost
	articles    ports.ArticleFetcher
	styles      *StyleStore

	// cache and flight wrap the outbound source fetches; they are
	// injected so every owner (and every test) gets its own instance.
	cache  *accel.Cache
	flight *accel.Flight

	maxRetries   int
	initialDelay time.Duration

	now   func() time.Time
	newID func() string
}

// NewService wires the generation workflows with their collaborators.
func NewService(
	generations ports.GenerationRepository,
	tasks ports.TaskRepository,
	uow ports.UnitOfWork,
	generator ports.Generator,
	source ports.SourceHost,
	articles ports.ArticleFetcher,
	styles *StyleStore,
	cache *accel.Cache,
) *Service {
	if cache == nil {
		cache = accel.NewCache()
	}

	return &Service{
		generations:  generations,
		tasks:        tasks,
		uow:          uow,
		generator:    generator,
		source:       source,
		articles:     articles,
		styles:       styles,
		cache:        cache,
		flight:       &accel.Flight{},
		maxRetries:   accel.DefaultMaxRetries,
		initialDelay: accel.DefaultInitialDelay,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// timestampLayout is fixed-width, unlike RFC3339Nano which drops
// trailing zeros, so stored timestamps order lexically as times.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func (s *Service) timestamp() string {
	return s.now().UTC().Format(timestampLayout)
}
