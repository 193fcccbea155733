package usecase

import (
	"context"

	"github.com/pipewatch/pipewatch/internal/entity"
	"github.com/pipewatch/pipewatch/internal/repository"
	"github.com/samber/do"
)

type GetProjectUsecase interface {
	Execute(ctx context.Context, id entity.ID) (*entity.Project, error)
}

type getProjectUsecaseImpl struct {
	projects repository.ProjectRepository
}

// Execute implements GetProjectUsecase.
func (u *getProjectUsecaseImpl) Execute(ctx context.Context, id entity.ID) (*entity.Project, error) {
	return u.projects.GetByID(ctx, id)
}

func NewGetProjectUsecase(i *do.Injector) (GetProjectUsecase, error) {
	return &getProjectUsecaseImpl{
		projects: do.MustInvoke[repository.ProjectRepository](i),
	}, nil
}
