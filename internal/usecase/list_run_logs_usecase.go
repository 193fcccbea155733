package usecase

import (
	"context"

	"github.com/pipewatch/pipewatch/internal/entity"
	"github.com/pipewatch/pipewatch/internal/repository"
	"github.com/samber/do"
)

type ListRunLogsUsecase interface {
	Execute(ctx context.Context, runID entity.ID) ([]*entity.PipelineLogEntry, error)
}

type listRunLogsUsecaseImpl struct {
	logs repository.PipelineLogRepository
}

// Execute implements ListRunLogsUsecase.
func (u *listRunLogsUsecaseImpl) Execute(ctx context.Context, runID entity.ID) ([]*entity.PipelineLogEntry, error) {
	return u.logs.ListByRun(ctx, runID)
}

func NewListRunLogsUsecase(i *do.Injector) (ListRunLogsUsecase, error) {
	return &listRunLogsUsecaseImpl{
		logs: do.MustInvoke[repository.PipelineLogRepository](i),
	}, nil
}
