package usecase

import (
	"context"
	"fmt"

	"github.com/pipewatch/pipewatch/internal/entity"
	"github.com/pipewatch/pipewatch/internal/repository"
	"github.com/samber/do"
)

type CreateProjectUsecase interface {
	Execute(ctx context.Context, project *entity.Project) (*entity.Project, error)
}

type createProjectUsecaseImpl struct {
	projects repository.ProjectRepository
}

// Execute implements CreateProjectUsecase.
func (u *createProjectUsecaseImpl) Execute(ctx context.Context, project *entity.Project) (*entity.Project, error) {
	if project.Name == "" || project.RepositoryURL == "" {
		return nil, fmt.Errorf("%w: name and repository_url are required", entity.ErrInvalid)
	}
	project.FillDefaults()
	if _, err := u.projects.GetByRepositoryURL(ctx, project.RepositoryURL); err == nil {
		return nil, entity.ErrConflict
	}
	return u.projects.Create(ctx, project)
}

func NewCreateProjectUsecase(i *do.Injector) (CreateProjectUsecase, error) {
	return &createProjectUsecaseImpl{
		projects: do.MustInvoke[repository.ProjectRepository](i),
	}, nil
}
