package repository

import (
	"context"

	"github.com/pipewatch/pipewatch/internal/entity"
	"gorm.io/gorm"
)

// AnalysisReportRepository stores immutable report snapshots; regeneration
// writes a new row.
type AnalysisReportRepository interface {
	Create(ctx context.Context, report *entity.AnalysisReport) (*entity.AnalysisReport, error)
	GetByUID(ctx context.Context, uid string) (*entity.AnalysisReport, error)
	ListByProject(ctx context.Context, projectID entity.ID) ([]*entity.AnalysisReport, error)
	List(ctx context.Context) ([]*entity.AnalysisReport, error)
}

type analysisReportRepositoryImpl struct {
	db *gorm.DB
}

func NewAnalysisReportRepository(db *gorm.DB) AnalysisReportRepository {
	return &analysisReportRepositoryImpl{db: db}
}

// Create implements AnalysisReportRepository.
func (r *analysisReportRepositoryImpl) Create(ctx context.Context, report *entity.AnalysisReport) (*entity.AnalysisReport, error) {
	var model AnalysisReport
	model.FromEntity(report)
	if err := gorm.G[AnalysisReport](r.db).Create(ctx, &model); err != nil {
		return nil, err
	}
	return model.ToEntity(), nil
}

// GetByUID implements AnalysisReportRepository.
func (r *analysisReportRepositoryImpl) GetByUID(ctx context.Context, uid string) (*entity.AnalysisReport, error) {
	found, err := gorm.G[AnalysisReport](r.db).Where("uid = ?", uid).First(ctx)
	if err != nil {
		return nil, err
	}
	return found.ToEntity(), nil
}

// ListByProject implements AnalysisReportRepository.
func (r *analysisReportRepositoryImpl) ListByProject(ctx context.Context, projectID entity.ID) ([]*entity.AnalysisReport, error) {
	founds, err := gorm.G[AnalysisReport](r.db).
		Where("project_id = ?", projectID.Uint()).
		Order("created_at desc").
		Find(ctx)
	if err != nil {
		return nil, err
	}
	return reportEntities(founds), nil
}

// List implements AnalysisReportRepository.
func (r *analysisReportRepositoryImpl) List(ctx context.Context) ([]*entity.AnalysisReport, error) {
	founds, err := gorm.G[AnalysisReport](r.db).Order("created_at desc").Find(ctx)
	if err != nil {
		return nil, err
	}
	return reportEntities(founds), nil
}

func reportEntities(models []AnalysisReport) []*entity.AnalysisReport {
	result := make([]*entity.AnalysisReport, len(models))
	for i := range models {
		result[i] = models[i].ToEntity()
	}
	return result
}
