package usecase

import (
	"context"

	"github.com/pipewatch/pipewatch/internal/entity"
	"github.com/pipewatch/pipewatch/internal/repository"
	"github.com/samber/do"
)

type ListProjectUsecase interface {
	Execute(ctx context.Context) ([]*entity.Project, error)
}

type listProjectUsecaseImpl struct {
	projects repository.ProjectRepository
}

// Execute implements ListProjectUsecase.
func (u *listProjectUsecaseImpl) Execute(ctx context.Context) ([]*entity.Project, error) {
	return u.projects.List(ctx)
}

func NewListProjectUsecase(i *do.Injector) (ListProjectUsecase, error) {
	return &listProjectUsecaseImpl{
		projects: do.MustInvoke[repository.ProjectRepository](i),
	}, nil
}
