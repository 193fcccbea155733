package usecase

import (
	"context"

	"github.com/pipewatch/pipewatch/internal/entity"
	"github.com/pipewatch/pipewatch/internal/repository"
	"github.com/samber/do"
)

type GetReportUsecase interface {
	Execute(ctx context.Context, id entity.ID) (*entity.AnalysisReport, error)
}

type getReportUsecaseImpl struct {
	reports repository.AnalysisReportRepository
}

// Execute implements GetReportUsecase.
func (u *getReportUsecaseImpl) Execute(ctx context.Context, id entity.ID) (*entity.AnalysisReport, error) {
	return u.reports.GetByUID(ctx, string(id))
}

func NewGetReportUsecase(i *do.Injector) (GetReportUsecase, error) {
	return &getReportUsecaseImpl{
		reports: do.MustInvoke[repository.AnalysisReportRepository](i),
	}, nil
}
