package studio

import (
	"context"
	"errors"
	"strings"

	"github.com/Krosebrook/Flash-n-Frame/internal/domain/studio"
	"github.com/Krosebrook/Flash-n-Frame/internal/errs"
)

type CreateTaskInput struct {
	Title string
	Notes string
}

type TaskListInput struct {
	Status      string
	Query       string
	IncludeDone bool
}

func (s *Service) CreateTask(ctx context.Context, in CreateTaskInput) (studio.Task, error) {
	if ctx == nil {
		return studio.Task{}, errors.New("context is required")
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return studio.Task{}, studio.ErrTaskTitleRequired
	}

	now := s.timestamp()
	task := studio.Task{
		ID:        s.newID(),
		Title:     title,
		Notes:     strings.TrimSpace(in.Notes),
		Status:    studio.StatusTodo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return studio.Task{}, errs.Wrap(err, "create task")
	}
	return task, nil
}

// UpdateTaskStatus moves a task to a new status inside one transaction,
// so a concurrent update cannot interleave between read and write.
func (s *Service) UpdateTaskStatus(ctx context.Context, id string, status string) (studio.Task, error) {
	if ctx == nil {
		return studio.Task{}, errors.New("context is required")
	}

	normalized, err := studio.NormalizeTaskStatus(status)
	if err != nil {
		return studio.Task{}, err
	}

	var updated studio.Task
	err = s.uow.WithTx(ctx, func(txCtx context.Context) error {
		task, err := s.tasks.Get(txCtx, id)
		if err != nil {
			return err
		}

		task.Status = normalized
		task.UpdatedAt = s.timestamp()
		if err := s.tasks.Update(txCtx, task); err != nil {
			return err
		}

		updated = task
		return nil
	})
	if err != nil {
		return studio.Task{}, err
	}
	return updated, nil
}

func (s *Service) DeleteTask(ctx context.Context, id string) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	return s.tasks.Delete(ctx, id)
}

// ListTasks loads all tasks and applies the domain filter rules.
func (s *Service) ListTasks(ctx context.Context, in TaskListInput) ([]studio.Task, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	filter := studio.TaskFilter{
		Query:       in.Query,
		IncludeDone: in.IncludeDone,
	}
	if trimmed := strings.TrimSpace(in.Status); trimmed != "" {
		status, err := studio.NormalizeTaskStatus(trimmed)
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}

	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "list tasks")
	}
	return studio.FilterTasks(tasks, filter), nil
}
