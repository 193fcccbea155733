package repository

import (
	"context"

	"github.com/pipewatch/pipewatch/internal/entity"
	"gorm.io/gorm"
)

// ProjectRepository doubles as the ProjectResolver: GetByRepositoryURL maps
// a webhook payload's repository URL to the owning project.
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) (*entity.Project, error)
	GetByID(ctx context.Context, id entity.ID) (*entity.Project, error)
	GetByRepositoryURL(ctx context.Context, url string) (*entity.Project, error)
	List(ctx context.Context) ([]*entity.Project, error)
	Update(ctx context.Context, project *entity.Project) (*entity.Project, error)
	Delete(ctx context.Context, id entity.ID) error
}

type projectRepositoryImpl struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepositoryImpl{db: db}
}

// Create implements ProjectRepository.
func (r *projectRepositoryImpl) Create(ctx context.Context, project *entity.Project) (*entity.Project, error) {
	var model Project
	model.FromEntity(project)
	if err := gorm.G[Project](r.db).Create(ctx, &model); err != nil {
		return nil, err
	}
	return model.ToEntity(), nil
}

// GetByID implements ProjectRepository.
func (r *projectRepositoryImpl) GetByID(ctx context.Context, id entity.ID) (*entity.Project, error) {
	found, err := gorm.G[Project](r.db).Where("id = ?", id.Uint()).First(ctx)
	if err != nil {
		return nil, err
	}
	return found.ToEntity(), nil
}

// GetByRepositoryURL implements ProjectRepository.
func (r *projectRepositoryImpl) GetByRepositoryURL(ctx context.Context, url string) (*entity.Project, error) {
	found, err := gorm.G[Project](r.db).Where("repository_url = ?", url).First(ctx)
	if err != nil {
		return nil, err
	}
	return found.ToEntity(), nil
}

// List implements ProjectRepository.
func (r *projectRepositoryImpl) List(ctx context.Context) ([]*entity.Project, error) {
	founds, err := gorm.G[Project](r.db).Find(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*entity.Project, len(founds))
	for i, f := range founds {
		result[i] = f.ToEntity()
	}
	return result, nil
}

// Update implements ProjectRepository.
func (r *projectRepositoryImpl) Update(ctx context.Context, project *entity.Project) (*entity.Project, error) {
	var model Project
	model.FromEntity(project)
	_, err := gorm.G[Project](r.db).Where("id = ?", project.ID.Uint()).Updates(ctx, model)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, project.ID)
}

// Delete implements ProjectRepository.
func (r *projectRepositoryImpl) Delete(ctx context.Context, id entity.ID) error {
	_, err := gorm.G[Project](r.db).Where("id = ?", id.Uint()).Delete(ctx)
	return err
}
