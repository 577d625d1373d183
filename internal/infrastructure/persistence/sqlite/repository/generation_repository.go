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

type GenerationRepository struct {
	db *gorm.DB
}

func NewGenerationRepository(db *gorm.DB) *GenerationRepository {
	return &GenerationRepository{db: db}
}

func (r *GenerationRepository) dbFromContext(ctx context.Context) (*gorm.DB, error) {
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

func (r *GenerationRepository) Create(ctx context.Context, gen studio.Generation) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	if strings.TrimSpace(gen.ID) == "" {
		return errors.New("generation id is required")
	}

	row := model.Generation{
		GenerationID: gen.ID,
		Kind:         string(gen.Kind),
		SourceRef:    gen.SourceRef,
		StyleID:      gen.StyleID,
		MIMEType:     gen.MIMEType,
		Payload:      gen.Payload,
		Summary:      gen.Summary,
		CreatedAt:    gen.CreatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return errs.Wrap(err, "insert generation")
	}
	return nil
}

func (r *GenerationRepository) Get(ctx context.Context, id string) (studio.Generation, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return studio.Generation{}, err
	}

	var row model.Generation
	if err := db.Where("generation_id = ?", id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return studio.Generation{}, ports.ErrGenerationNotFound
		}
		return studio.Generation{}, errs.Wrap(err, "query generation by id")
	}
	return mapGeneration(row), nil
}

func (r *GenerationRepository) List(ctx context.Context, filter ports.GenerationFilter) ([]studio.Generation, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.Generation{})
	if filter.Kind != "" {
		query = query.Where("kind = ?", string(filter.Kind))
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []model.Generation
	if err := query.Order("created_at desc, generation_id desc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query generations")
	}

	items := make([]studio.Generation, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapGeneration(row))
	}
	return items, nil
}

func (r *GenerationRepository) Delete(ctx context.Context, id string) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	res := db.Where("generation_id = ?", id).Delete(&model.Generation{})
	if res.Error != nil {
		return errs.Wrap(res.Error, "delete generation")
	}
	if res.RowsAffected == 0 {
		return ports.ErrGenerationNotFound
	}
	return nil
}

func (r *GenerationRepository) Clear(ctx context.Context) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	if err := db.Where("1 = 1").Delete(&model.Generation{}).Error; err != nil {
		return errs.Wrap(err, "clear generations")
	}
	return nil
}

func mapGeneration(row model.Generation) studio.Generation {
	return studio.Generation{
		ID:        row.GenerationID,
		Kind:      studio.ArtifactKind(row.Kind),
		SourceRef: row.SourceRef,
		StyleID:   row.StyleID,
		MIMEType:  row.MIMEType,
		Payload:   row.Payload,
		Summary:   row.Summary,
		CreatedAt: row.CreatedAt,
	}
}
