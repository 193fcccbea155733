package repository

import (
	"context"

	"github.com/pipewatch/pipewatch/internal/entity"
	"gorm.io/gorm"
)

// PipelineLogRepository is append-only: entries are never updated, and they
// disappear only when the owning run is deleted.
type PipelineLogRepository interface {
	Append(ctx context.Context, entry *entity.PipelineLogEntry) (*entity.PipelineLogEntry, error)
	ListByRun(ctx context.Context, runID entity.ID) ([]*entity.PipelineLogEntry, error)
}

type pipelineLogRepositoryImpl struct {
	db *gorm.DB
}

func NewPipelineLogRepository(db *gorm.DB) PipelineLogRepository {
	return &pipelineLogRepositoryImpl{db: db}
}

// Append implements PipelineLogRepository.
func (r *pipelineLogRepositoryImpl) Append(ctx context.Context, entry *entity.PipelineLogEntry) (*entity.PipelineLogEntry, error) {
	var model PipelineLogEntry
	model.FromEntity(entry)
	if err := gorm.G[PipelineLogEntry](r.db).Create(ctx, &model); err != nil {
		return nil, err
	}
	return model.ToEntity(), nil
}

// ListByRun implements PipelineLogRepository.
func (r *pipelineLogRepositoryImpl) ListByRun(ctx context.Context, runID entity.ID) ([]*entity.PipelineLogEntry, error) {
	founds, err := gorm.G[PipelineLogEntry](r.db).
		Where("run_id = ?", runID.Uint()).
		Order("created_at asc").
		Find(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*entity.PipelineLogEntry, len(founds))
	for i := range founds {
		result[i] = founds[i].ToEntity()
	}
	return result, nil
}
