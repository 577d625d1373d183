package studio

import (
	"context"
	"errors"
	"strings"

	"github.com/Krosebrook/Flash-n-Frame/internal/domain/studio"
	"github.com/Krosebrook/Flash-n-Frame/internal/ports"
)

type HistoryFilter struct {
	Kind  string
	Limit int
}

// ListGenerations returns history entries, newest first.
func (s *Service) ListGenerations(ctx context.Context, filter HistoryFilter) ([]studio.Generation, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	repoFilter := ports.GenerationFilter{Limit: filter.Limit}
	if trimmed := strings.TrimSpace(filter.Kind); trimmed != "" {
		kind, err := studio.ParseArtifactKind(trimmed)
		if err != nil {
			return nil, err
		}
		repoFilter.Kind = kind
	}

	return s.generations.List(ctx, repoFilter)
}

func (s *Service) GetGeneration(ctx context.Context, id string) (studio.Generation, error) {
	if ctx == nil {
		return studio.Generation{}, errors.New("context is required")
	}
	return s.generations.Get(ctx, id)
}

func (s *Service) DeleteGeneration(ctx context.Context, id string) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	return s.generations.Delete(ctx, id)
}

func (s *Service) ClearGenerations(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	return s.generations.Clear(ctx)
}
