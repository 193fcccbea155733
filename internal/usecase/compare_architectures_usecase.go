package usecase

import (
	"context"
	"time"

	"github.com/pipewatch/pipewatch/internal/metrics"
	"github.com/pipewatch/pipewatch/internal/repository"
	"github.com/samber/do"
)

// CompareArchitecturesUsecase aggregates runs across all projects into the
// two architecture cohorts for one window.
type CompareArchitecturesUsecase interface {
	Execute(ctx context.Context, start, end time.Time) (*metrics.ArchitectureComparison, error)
}

type compareArchitecturesUsecaseImpl struct {
	runs repository.PipelineRunRepository
}

// Execute implements CompareArchitecturesUsecase.
func (u *compareArchitecturesUsecaseImpl) Execute(ctx context.Context, start, end time.Time) (*metrics.ArchitectureComparison, error) {
	runs, err := u.runs.ListAll(ctx, repository.RunFilter{Start: &start, End: &end})
	if err != nil {
		return nil, err
	}
	c := metrics.CompareArchitectures(runs)
	return &c, nil
}

func NewCompareArchitecturesUsecase(i *do.Injector) (CompareArchitecturesUsecase, error) {
	return &compareArchitecturesUsecaseImpl{
		runs: do.MustInvoke[repository.PipelineRunRepository](i),
	}, nil
}
