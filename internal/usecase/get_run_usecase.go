package usecase

import (
	"context"

	"github.com/pipewatch/pipewatch/internal/entity"
	"github.com/pipewatch/pipewatch/internal/repository"
	"github.com/samber/do"
)

type GetRunUsecase interface {
	Execute(ctx context.Context, id entity.ID) (*entity.PipelineRun, error)
}

type getRunUsecaseImpl struct {
	runs repository.PipelineRunRepository
}

// Execute implements GetRunUsecase.
func (u *getRunUsecaseImpl) Execute(ctx context.Context, id entity.ID) (*entity.PipelineRun, error) {
	return u.runs.GetByID(ctx, id)
}

func NewGetRunUsecase(i *do.Injector) (GetRunUsecase, error) {
	return &getRunUsecaseImpl{
		runs: do.MustInvoke[repository.PipelineRunRepository](i),
	}, nil
}
