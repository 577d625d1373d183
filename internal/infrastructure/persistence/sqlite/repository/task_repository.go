package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Krosebrook/Flash-n-Frame/internal/domain/studio"
	"github.com/Krosebrook/Flash-n-Frame/internal/errs"
	"github.com/Krosebrook/Flash-n-Frame/internal/infrastructure/persistence/sqlite/model"
	"github.com/Krosebrook/Flash-n-Frame/internal/ports"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) dbFromContext(ctx context.Context) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx)
	if tx == nil {
		return r.db.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}

func (r *TaskRepository) Create(ctx context.Context, task studio.Task) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	if strings.TrimSpace(task.ID) == "" {
		return errors.New("task id is required")
	}

	row := mapTaskModel(task)
	if err := db.Create(&row).Error; err != nil {
		return errs.Wrap(err, "insert task")
	}
	return nil
}

func (r *TaskRepository) Get(ctx context.Context, id string) (studio.Task, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return studio.Task{}, err
	}

	var row model.Task
	if err := db.Where("task_id = ?", id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return studio.Task{}, ports.ErrTaskNotFound
		}
		return studio.Task{}, errs.Wrap(err, "query task by id")
	}
	return mapTask(row), nil
}

func (r *TaskRepository) Update(ctx context.Context, task studio.Task) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	row := mapTaskModel(task)
	res := db.Model(&model.Task{}).
		Where("task_id = ?", task.ID).
		Updates(map[string]any{
			"title":      row.Title,
			"notes":      row.Notes,
			"status":     row.Status,
			"updated_at": row.UpdatedAt,
		})
	if res.Error != nil {
		return errs.Wrap(res.Error, "update task")
	}
	if res.RowsAffected == 0 {
		return ports.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	res := db.Where("task_id = ?", id).Delete(&model.Task{})
	if res.Error != nil {
		return errs.Wrap(res.Error, "delete task")
	}
	if res.RowsAffected == 0 {
		return ports.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) List(ctx context.Context) ([]studio.Task, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Task
	if err := db.Order("created_at asc, task_id asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query tasks")
	}

	tasks := make([]studio.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTask(row))
	}
	return tasks, nil
}

func mapTask(row model.Task) studio.Task {
	return studio.Task{
		ID:        row.TaskID,
		Title:     row.Title,
		Notes:     row.Notes,
		Status:    studio.TaskStatus(row.Status),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func mapTaskModel(task studio.Task) model.Task {
	return model.Task{
		TaskID:    task.ID,
		Title:     task.Title,
		Notes:     task.Notes,
		Status:    string(task.Status),
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}
