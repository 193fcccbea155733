package usecase

import (
	"context"

	"github.com/pipewatch/pipewatch/internal/entity"
	"github.com/pipewatch/pipewatch/internal/repository"
	"github.com/samber/do"
)

type ListRunsUsecase interface {
	Execute(ctx context.Context, projectID entity.ID, filter repository.RunFilter) ([]*entity.PipelineRun, error)
}

type listRunsUsecaseImpl struct {
	runs repository.PipelineRunRepository
}

// Execute implements ListRunsUsecase.
func (u *listRunsUsecaseImpl) Execute(ctx context.Context, projectID entity.ID, filter repository.RunFilter) ([]*entity.PipelineRun, error) {
	return u.runs.ListByProject(ctx, projectID, filter)
}

func NewListRunsUsecase(i *do.Injector) (ListRunsUsecase, error) {
	return &listRunsUsecaseImpl{
		runs: do.MustInvoke[repository.PipelineRunRepository](i),
	}, nil
}
