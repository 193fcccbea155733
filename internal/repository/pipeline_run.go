package repository

import (
	"context"
	"time"

	"github.com/pipewatch/pipewatch/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RunFilter narrows run queries. Time bounds apply to created_at as
// [Start, End).
type RunFilter struct {
	Start  *time.Time
	End    *time.Time
	Status *entity.PipelineStatus
	Branch string
}

type PipelineRunRepository interface {
	Create(ctx context.Context, run *entity.PipelineRun) (*entity.PipelineRun, error)
	GetByID(ctx context.Context, id entity.ID) (*entity.PipelineRun, error)
	ListByProject(ctx context.Context, projectID entity.ID, filter RunFilter) ([]*entity.PipelineRun, error)
	ListAll(ctx context.Context, filter RunFilter) ([]*entity.PipelineRun, error)
	Update(ctx context.Context, run *entity.PipelineRun) (*entity.PipelineRun, error)
	// Transition applies fn to the stored run inside one transaction, so a
	// concurrent status change cannot interleave with the read-modify-write.
	Transition(ctx context.Context, id entity.ID, fn func(run *entity.PipelineRun) error) (*entity.PipelineRun, error)
	Delete(ctx context.Context, id entity.ID) error
}

type pipelineRunRepositoryImpl struct {
	db *gorm.DB
}

func NewPipelineRunRepository(db *gorm.DB) PipelineRunRepository {
	return &pipelineRunRepositoryImpl{db: db}
}

// Create implements PipelineRunRepository.
func (r *pipelineRunRepositoryImpl) Create(ctx context.Context, run *entity.PipelineRun) (*entity.PipelineRun, error) {
	var model PipelineRun
	model.FromEntity(run)
	if err := gorm.G[PipelineRun](r.db).Create(ctx, &model); err != nil {
		return nil, err
	}
	return model.ToEntity(), nil
}

// GetByID implements PipelineRunRepository.
func (r *pipelineRunRepositoryImpl) GetByID(ctx context.Context, id entity.ID) (*entity.PipelineRun, error) {
	found, err := gorm.G[PipelineRun](r.db).Where("id = ?", id.Uint()).First(ctx)
	if err != nil {
		return nil, err
	}
	return found.ToEntity(), nil
}

func applyFilter(q *gorm.DB, filter RunFilter) *gorm.DB {
	if filter.Start != nil {
		q = q.Where("created_at >= ?", *filter.Start)
	}
	if filter.End != nil {
		q = q.Where("created_at < ?", *filter.End)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", string(*filter.Status))
	}
	if filter.Branch != "" {
		q = q.Where("branch = ?", filter.Branch)
	}
	return q
}

// ListByProject implements PipelineRunRepository.
func (r *pipelineRunRepositoryImpl) ListByProject(ctx context.Context, projectID entity.ID, filter RunFilter) ([]*entity.PipelineRun, error) {
	q := applyFilter(r.db.WithContext(ctx).Where("project_id = ?", projectID.Uint()), filter)
	var founds []PipelineRun
	if err := q.Order("created_at asc").Find(&founds).Error; err != nil {
		return nil, err
	}
	return toEntities(founds), nil
}

// ListAll implements PipelineRunRepository.
func (r *pipelineRunRepositoryImpl) ListAll(ctx context.Context, filter RunFilter) ([]*entity.PipelineRun, error) {
	q := applyFilter(r.db.WithContext(ctx), filter)
	var founds []PipelineRun
	if err := q.Order("created_at asc").Find(&founds).Error; err != nil {
		return nil, err
	}
	return toEntities(founds), nil
}

// Update implements PipelineRunRepository.
func (r *pipelineRunRepositoryImpl) Update(ctx context.Context, run *entity.PipelineRun) (*entity.PipelineRun, error) {
	var model PipelineRun
	model.FromEntity(run)
	if err := r.db.WithContext(ctx).Model(&PipelineRun{}).
		Where("id = ?", run.ID.Uint()).
		Select("*").Omit("id", "created_at").
		Updates(&model).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, run.ID)
}

// Transition implements PipelineRunRepository.
func (r *pipelineRunRepositoryImpl) Transition(ctx context.Context, id entity.ID, fn func(run *entity.PipelineRun) error) (*entity.PipelineRun, error) {
	var result *entity.PipelineRun
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model PipelineRun
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id.Uint()).First(&model).Error; err != nil {
			return err
		}
		run := model.ToEntity()
		if err := fn(run); err != nil {
			return err
		}
		model.FromEntity(run)
		if err := tx.Model(&PipelineRun{}).
			Where("id = ?", model.ID).
			Select("*").Omit("id", "created_at").
			Updates(&model).Error; err != nil {
			return err
		}
		result = model.ToEntity()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete implements PipelineRunRepository.
func (r *pipelineRunRepositoryImpl) Delete(ctx context.Context, id entity.ID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// cascade the run's log stream
		if err := tx.Where("run_id = ?", id.Uint()).Delete(&PipelineLogEntry{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id.Uint()).Delete(&PipelineRun{}).Error
	})
}

func toEntities(models []PipelineRun) []*entity.PipelineRun {
	result := make([]*entity.PipelineRun, len(models))
	for i := range models {
		result[i] = models[i].ToEntity()
	}
	return result
}
