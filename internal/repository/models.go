package repository

import (
	"time"

	"github.com/pipewatch/pipewatch/internal/entity"
	"gorm.io/gorm"
)

type Project struct {
	gorm.Model
	Name           string
	Description    string
	RepositoryURL  string `gorm:"uniqueIndex"`
	ServiceType    string
	ArchitectureID *uint
}

func (p *Project) ToEntity() *entity.Project {
	e := &entity.Project{
		ID:            entity.NewID(p.ID),
		Name:          p.Name,
		Description:   p.Description,
		RepositoryURL: p.RepositoryURL,
		ServiceType:   entity.ServiceType(p.ServiceType),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.ArchitectureID != nil {
		id := entity.NewID(*p.ArchitectureID)
		e.ArchitectureID = &id
	}
	return e
}

func (p *Project) FromEntity(e *entity.Project) {
	if e.ID != "" {
		p.ID = e.ID.Uint()
	}
	p.Name = e.Name
	p.Description = e.Description
	p.RepositoryURL = e.RepositoryURL
	p.ServiceType = string(e.ServiceType)
	if e.ArchitectureID != nil {
		id := e.ArchitectureID.Uint()
		p.ArchitectureID = &id
	}
}

type PipelineRun struct {
	gorm.Model
	ProjectID      uint `gorm:"index"`
	Project        Project
	ArchitectureID *uint
	ServiceType    string
	Provider       string

	Status  string `gorm:"index"`
	Trigger string

	Branch        string
	CommitSHA     string
	CommitMessage string
	Author        string
	RepositoryURL string

	StartedAt  *time.Time
	FinishedAt *time.Time
	Duration   *int64

	BuildTime  *float64
	TestTime   *float64
	DeployTime *float64

	LeadTime           *float64
	IsFailedDeployment bool
	IsRollback         bool
	PreviousPipelineID *uint

	Stages       []entity.StageResult `gorm:"serializer:json"`
	ErrorMessage string
	FailedStage  string

	ArtifactSizeMB      *float64
	ArtifactStorageCost *float64
}

func (r *PipelineRun) ToEntity() *entity.PipelineRun {
	e := &entity.PipelineRun{
		ID:                  entity.NewID(r.ID),
		ProjectID:           entity.NewID(r.ProjectID),
		ServiceType:         r.ServiceType,
		Provider:            entity.Provider(r.Provider),
		Status:              entity.PipelineStatus(r.Status),
		Trigger:             entity.PipelineTrigger(r.Trigger),
		Branch:              r.Branch,
		CommitSHA:           r.CommitSHA,
		CommitMessage:       r.CommitMessage,
		Author:              r.Author,
		RepositoryURL:       r.RepositoryURL,
		StartedAt:           r.StartedAt,
		FinishedAt:          r.FinishedAt,
		Duration:            r.Duration,
		BuildTime:           r.BuildTime,
		TestTime:            r.TestTime,
		DeployTime:          r.DeployTime,
		LeadTime:            r.LeadTime,
		IsFailedDeployment:  r.IsFailedDeployment,
		IsRollback:          r.IsRollback,
		Stages:              r.Stages,
		ErrorMessage:        r.ErrorMessage,
		FailedStage:         r.FailedStage,
		ArtifactSizeMB:      r.ArtifactSizeMB,
		ArtifactStorageCost: r.ArtifactStorageCost,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
	if r.ArchitectureID != nil {
		id := entity.NewID(*r.ArchitectureID)
		e.ArchitectureID = &id
	}
	if r.PreviousPipelineID != nil {
		id := entity.NewID(*r.PreviousPipelineID)
		e.PreviousPipelineID = &id
	}
	return e
}

func (r *PipelineRun) FromEntity(e *entity.PipelineRun) {
	if e.ID != "" {
		r.ID = e.ID.Uint()
	}
	r.ProjectID = e.ProjectID.Uint()
	r.ServiceType = e.ServiceType
	r.Provider = string(e.Provider)
	r.Status = string(e.Status)
	r.Trigger = string(e.Trigger)
	r.Branch = e.Branch
	r.CommitSHA = e.CommitSHA
	r.CommitMessage = e.CommitMessage
	r.Author = e.Author
	r.RepositoryURL = e.RepositoryURL
	r.StartedAt = e.StartedAt
	r.FinishedAt = e.FinishedAt
	r.Duration = e.Duration
	r.BuildTime = e.BuildTime
	r.TestTime = e.TestTime
	r.DeployTime = e.DeployTime
	r.LeadTime = e.LeadTime
	r.IsFailedDeployment = e.IsFailedDeployment
	r.IsRollback = e.IsRollback
	r.Stages = e.Stages
	r.ErrorMessage = e.ErrorMessage
	r.FailedStage = e.FailedStage
	r.ArtifactSizeMB = e.ArtifactSizeMB
	r.ArtifactStorageCost = e.ArtifactStorageCost
	if e.ArchitectureID != nil {
		id := e.ArchitectureID.Uint()
		r.ArchitectureID = &id
	}
	if e.PreviousPipelineID != nil {
		id := e.PreviousPipelineID.Uint()
		r.PreviousPipelineID = &id
	}
}

type PipelineLogEntry struct {
	gorm.Model
	RunID      uint        `gorm:"index"`
	Run        PipelineRun `gorm:"constraint:OnDelete:CASCADE"`
	Stage      string
	Level      string
	Message    string
	StackTrace string
	Metadata   map[string]string `gorm:"serializer:json"`
}

func (l *PipelineLogEntry) ToEntity() *entity.PipelineLogEntry {
	return &entity.PipelineLogEntry{
		ID:         entity.NewID(l.ID),
		RunID:      entity.NewID(l.RunID),
		Stage:      entity.PipelineStage(l.Stage),
		Level:      entity.LogLevel(l.Level),
		Message:    l.Message,
		StackTrace: l.StackTrace,
		Metadata:   l.Metadata,
		CreatedAt:  l.CreatedAt,
	}
}

func (l *PipelineLogEntry) FromEntity(e *entity.PipelineLogEntry) {
	if e.RunID != "" {
		l.RunID = e.RunID.Uint()
	}
	l.Stage = string(e.Stage)
	l.Level = string(e.Level)
	l.Message = e.Message
	l.StackTrace = e.StackTrace
	l.Metadata = e.Metadata
}

// WebhookDelivery reserves one idempotency key per provider event so a
// redelivered webhook cannot create a second run.
type WebhookDelivery struct {
	gorm.Model
	Provider string `gorm:"uniqueIndex:idx_deliveries_provider_event"`
	EventID  string `gorm:"uniqueIndex:idx_deliveries_provider_event"`
	RunID    *uint
}

type AnalysisReport struct {
	gorm.Model
	UID                     string                  `gorm:"uniqueIndex"`
	ProjectID               *uint                   `gorm:"index"`
	Type                    string
	Metrics                 map[string]any          `gorm:"serializer:json"`
	ComparisonData          map[string]any          `gorm:"serializer:json"`
	Recommendations         []entity.Recommendation `gorm:"serializer:json"`
	RecommendedArchitecture string
	PotentialImprovementPct *float64
	PeriodStart             time.Time
	PeriodEnd               time.Time
}

func (r *AnalysisReport) ToEntity() *entity.AnalysisReport {
	e := &entity.AnalysisReport{
		ID:                      entity.NewID(r.UID),
		Type:                    entity.ReportType(r.Type),
		Metrics:                 r.Metrics,
		ComparisonData:          r.ComparisonData,
		Recommendations:         r.Recommendations,
		RecommendedArchitecture: r.RecommendedArchitecture,
		PotentialImprovementPct: r.PotentialImprovementPct,
		AnalysisPeriodStart:     r.PeriodStart,
		AnalysisPeriodEnd:       r.PeriodEnd,
		CreatedAt:               r.CreatedAt,
	}
	if r.ProjectID != nil {
		id := entity.NewID(*r.ProjectID)
		e.ProjectID = &id
	}
	return e
}

func (r *AnalysisReport) FromEntity(e *entity.AnalysisReport) {
	r.UID = e.ID.String()
	r.Type = string(e.Type)
	r.Metrics = e.Metrics
	r.ComparisonData = e.ComparisonData
	r.Recommendations = e.Recommendations
	r.RecommendedArchitecture = e.RecommendedArchitecture
	r.PotentialImprovementPct = e.PotentialImprovementPct
	r.PeriodStart = e.AnalysisPeriodStart
	r.PeriodEnd = e.AnalysisPeriodEnd
	if e.ProjectID != nil {
		id := e.ProjectID.Uint()
		r.ProjectID = &id
	}
}
