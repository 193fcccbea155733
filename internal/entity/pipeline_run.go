package entity

import "time"

type PipelineStatus string

const (
	StatusPending   PipelineStatus = "pending"
	StatusRunning   PipelineStatus = "running"
	StatusSuccess   PipelineStatus = "success"
	StatusFailed    PipelineStatus = "failed"
	StatusCancelled PipelineStatus = "cancelled"
	StatusSkipped   PipelineStatus = "skipped"
)

// IsTerminal reports whether no further transition is defined from s.
func (s PipelineStatus) IsTerminal() bool {
	switch s {
	case StatusSuccess, StatusFailed, StatusCancelled, StatusSkipped:
		return true
	}
	return false
}

type PipelineTrigger string

const (
	TriggerPush        PipelineTrigger = "push"
	TriggerPullRequest PipelineTrigger = "pull_request"
	TriggerManual      PipelineTrigger = "manual"
	TriggerSchedule    PipelineTrigger = "schedule"
	TriggerTag         PipelineTrigger = "tag"
)

type Provider string

const (
	ProviderGitHub  Provider = "github"
	ProviderGitLab  Provider = "gitlab"
	ProviderGeneric Provider = "generic"
)

// StageResult is one named stage of a run, in execution order.
type StageResult struct {
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Duration    *float64   `json:"duration,omitempty"`
}

// PipelineRun is the canonical record one provider event normalizes into.
// Optional timing fields stay nil when the provider does not report them so
// averages can exclude them instead of counting zeros.
type PipelineRun struct {
	ID             ID       `json:"id"`
	ProjectID      ID       `json:"project_id"`
	ArchitectureID *ID      `json:"architecture_id,omitempty"`
	ServiceType    string   `json:"service_type,omitempty"`
	Provider       Provider `json:"provider"`

	Status  PipelineStatus  `json:"status"`
	Trigger PipelineTrigger `json:"trigger"`

	Branch        string `json:"branch"`
	CommitSHA     string `json:"commit_sha"`
	CommitMessage string `json:"commit_message"`
	Author        string `json:"author"`
	RepositoryURL string `json:"repository_url"`

	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Duration   *int64     `json:"duration,omitempty"` // seconds

	BuildTime  *float64 `json:"build_time,omitempty"`  // seconds
	TestTime   *float64 `json:"test_time,omitempty"`   // seconds
	DeployTime *float64 `json:"deploy_time,omitempty"` // seconds

	LeadTime           *float64 `json:"lead_time,omitempty"` // seconds, commit to deploy
	IsFailedDeployment bool     `json:"is_failed_deployment"`
	IsRollback         bool     `json:"is_rollback"`
	PreviousPipelineID *ID      `json:"previous_pipeline_id,omitempty"`

	Stages       []StageResult `json:"stages,omitempty"`
	ErrorMessage string        `json:"error_message,omitempty"`
	FailedStage  string        `json:"failed_stage,omitempty"`

	ArtifactSizeMB      *float64 `json:"artifact_size_mb,omitempty"`
	ArtifactStorageCost *float64 `json:"artifact_storage_cost,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
