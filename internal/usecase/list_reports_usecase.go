package usecase

import (
	"context"

	"github.com/pipewatch/pipewatch/internal/entity"
	"github.com/pipewatch/pipewatch/internal/repository"
	"github.com/samber/do"
)

type ListReportsUsecase interface {
	// Execute lists reports, scoped to a project when projectID is set.
	Execute(ctx context.Context, projectID entity.ID) ([]*entity.AnalysisReport, error)
}

type listReportsUsecaseImpl struct {
	reports repository.AnalysisReportRepository
}

// Execute implements ListReportsUsecase.
func (u *listReportsUsecaseImpl) Execute(ctx context.Context, projectID entity.ID) ([]*entity.AnalysisReport, error) {
	if projectID == "" {
		return u.reports.List(ctx)
	}
	return u.reports.ListByProject(ctx, projectID)
}

func NewListReportsUsecase(i *do.Injector) (ListReportsUsecase, error) {
	return &listReportsUsecaseImpl{
		reports: do.MustInvoke[repository.AnalysisReportRepository](i),
	}, nil
}
