package usecase

import (
	"context"
	"time"

	"github.com/pipewatch/pipewatch/internal/entity"
	"github.com/pipewatch/pipewatch/internal/metrics"
	"github.com/pipewatch/pipewatch/internal/repository"
	"github.com/samber/do"
)

type GetTrendsUsecase interface {
	Execute(ctx context.Context, projectID entity.ID, start, end time.Time, interval metrics.Interval) ([]metrics.TrendPoint, error)
}

type getTrendsUsecaseImpl struct {
	runs repository.PipelineRunRepository
}

// Execute implements GetTrendsUsecase.
func (u *getTrendsUsecaseImpl) Execute(ctx context.Context, projectID entity.ID, start, end time.Time, interval metrics.Interval) ([]metrics.TrendPoint, error) {
	runs, err := u.runs.ListByProject(ctx, projectID, repository.RunFilter{Start: &start, End: &end})
	if err != nil {
		return nil, err
	}
	return metrics.ComputeTrends(runs, start, end, interval)
}

func NewGetTrendsUsecase(i *do.Injector) (GetTrendsUsecase, error) {
	return &getTrendsUsecaseImpl{
		runs: do.MustInvoke[repository.PipelineRunRepository](i),
	}, nil
}
