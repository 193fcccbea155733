package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pipewatch/pipewatch/internal/entity"
	"github.com/pipewatch/pipewatch/internal/metrics"
	"github.com/pipewatch/pipewatch/internal/repository"
	"github.com/samber/do"
)

type MetricsKind string

const (
	MetricsKindDORA        MetricsKind = "dora"
	MetricsKindCICD        MetricsKind = "cicd"
	MetricsKindPerformance MetricsKind = "performance"
)

type GetMetricsUsecase interface {
	Execute(ctx context.Context, projectID entity.ID, start, end time.Time, kind MetricsKind) (any, error)
}

type getMetricsUsecaseImpl struct {
	projects repository.ProjectRepository
	runs     repository.PipelineRunRepository
}

// Execute implements GetMetricsUsecase.
func (u *getMetricsUsecaseImpl) Execute(ctx context.Context, projectID entity.ID, start, end time.Time, kind MetricsKind) (any, error) {
	project, err := u.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	runs, err := u.runs.ListByProject(ctx, projectID, repository.RunFilter{Start: &start, End: &end})
	if err != nil {
		return nil, err
	}

	switch kind {
	case MetricsKindDORA:
		return metrics.ComputeDORA(runs, start, end), nil
	case MetricsKindCICD:
		return metrics.ComputeCICD(runs), nil
	case MetricsKindPerformance:
		return metrics.ComputePerformance(runs, start, end, string(project.ServiceType)), nil
	}
	return nil, fmt.Errorf("%w: metrics kind %q", entity.ErrInvalid, kind)
}

func NewGetMetricsUsecase(i *do.Injector) (GetMetricsUsecase, error) {
	return &getMetricsUsecaseImpl{
		projects: do.MustInvoke[repository.ProjectRepository](i),
		runs:     do.MustInvoke[repository.PipelineRunRepository](i),
	}, nil
}
