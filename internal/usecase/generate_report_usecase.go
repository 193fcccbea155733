package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pipewatch/pipewatch/internal/entity"
	"github.com/pipewatch/pipewatch/internal/metrics"
	"github.com/pipewatch/pipewatch/internal/repository"
	"github.com/samber/do"
)

type ReportRequest struct {
	// ProjectID is required for project-scoped types and must be empty for
	// the global architecture comparison.
	ProjectID entity.ID
	Type      entity.ReportType
	Start     time.Time
	End       time.Time
}

// GenerateReportUsecase computes one immutable AnalysisReport snapshot and
// persists it. Reports are historical records, never recomputed in place.
type GenerateReportUsecase interface {
	Execute(ctx context.Context, req ReportRequest) (*entity.AnalysisReport, error)
}

type generateReportUsecaseImpl struct {
	projects repository.ProjectRepository
	runs     repository.PipelineRunRepository
	reports  repository.AnalysisReportRepository
}

// Execute implements GenerateReportUsecase.
func (u *generateReportUsecaseImpl) Execute(ctx context.Context, req ReportRequest) (*entity.AnalysisReport, error) {
	report := &entity.AnalysisReport{
		ID:                  entity.NewID(uuid.NewString()),
		Type:                req.Type,
		AnalysisPeriodStart: req.Start,
		AnalysisPeriodEnd:   req.End,
	}

	switch req.Type {
	case entity.ReportTypePerformance, entity.ReportTypeOptimization:
		if err := u.fillProjectReport(ctx, req, report); err != nil {
			return nil, err
		}
	case entity.ReportTypeArchitecture, entity.ReportTypeComparison:
		if err := u.fillArchitectureReport(ctx, req, report); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: report type %q", entity.ErrInvalid, req.Type)
	}

	return u.reports.Create(ctx, report)
}

func (u *generateReportUsecaseImpl) fillProjectReport(ctx context.Context, req ReportRequest, report *entity.AnalysisReport) error {
	if req.ProjectID == "" {
		return fmt.Errorf("%w: project report without project", entity.ErrInvalid)
	}
	project, err := u.projects.GetByID(ctx, req.ProjectID)
	if err != nil {
		return err
	}
	runs, err := u.runs.ListByProject(ctx, req.ProjectID, repository.RunFilter{Start: &req.Start, End: &req.End})
	if err != nil {
		return err
	}

	perf := metrics.ComputePerformance(runs, req.Start, req.End, string(project.ServiceType))
	report.ProjectID = &project.ID
	report.Metrics = toMap(perf)
	report.Recommendations = metrics.GenerateRecommendations(perf)
	return nil
}

func (u *generateReportUsecaseImpl) fillArchitectureReport(ctx context.Context, req ReportRequest, report *entity.AnalysisReport) error {
	runs, err := u.runs.ListAll(ctx, repository.RunFilter{Start: &req.Start, End: &req.End})
	if err != nil {
		return err
	}

	cmp := metrics.CompareArchitectures(runs)
	sel := metrics.SelectArchitecture(cmp.Monolithic, cmp.Microservices)

	report.Metrics = map[string]any{
		"monolithic":    toMap(cmp.Monolithic),
		"microservices": toMap(cmp.Microservices),
	}
	report.ComparisonData = toMap(cmp)
	report.RecommendedArchitecture = sel.RecommendedArchitecture
	report.PotentialImprovementPct = &sel.ImprovementPct
	return nil
}

// toMap flattens a metrics struct into the report's opaque payload shape.
func toMap(v any) map[string]any {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

func NewGenerateReportUsecase(i *do.Injector) (GenerateReportUsecase, error) {
	return &generateReportUsecaseImpl{
		projects: do.MustInvoke[repository.ProjectRepository](i),
		runs:     do.MustInvoke[repository.PipelineRunRepository](i),
		reports:  do.MustInvoke[repository.AnalysisReportRepository](i),
	}, nil
}
