package usecase

import (
	"context"
	"time"

	"github.com/pipewatch/pipewatch/internal/entity"
	"github.com/pipewatch/pipewatch/internal/lifecycle"
	"github.com/pipewatch/pipewatch/internal/repository"
	"github.com/samber/do"
)

type TransitionRunUsecase interface {
	Execute(ctx context.Context, runID entity.ID, next entity.PipelineStatus, errMsg string) (*entity.PipelineRun, error)
}

type transitionRunUsecaseImpl struct {
	runs repository.PipelineRunRepository
}

// Execute implements TransitionRunUsecase. The read-modify-write runs inside
// one repository transaction per run id so concurrent transitions cannot
// compute duration against a stale started_at.
func (u *transitionRunUsecaseImpl) Execute(ctx context.Context, runID entity.ID, next entity.PipelineStatus, errMsg string) (*entity.PipelineRun, error) {
	return u.runs.Transition(ctx, runID, func(run *entity.PipelineRun) error {
		return lifecycle.Apply(run, next, time.Now().UTC(), errMsg)
	})
}

func NewTransitionRunUsecase(i *do.Injector) (TransitionRunUsecase, error) {
	return &transitionRunUsecaseImpl{
		runs: do.MustInvoke[repository.PipelineRunRepository](i),
	}, nil
}
