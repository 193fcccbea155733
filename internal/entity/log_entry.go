package entity

import "time"

type PipelineStage string

const (
	StageInit    PipelineStage = "init"
	StageBuild   PipelineStage = "build"
	StageTest    PipelineStage = "test"
	StageDeploy  PipelineStage = "deploy"
	StageCleanup PipelineStage = "cleanup"
)

type LogLevel string

const (
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warning"
	LogLevelError   LogLevel = "error"
	LogLevelDebug   LogLevel = "debug"
)

// PipelineLogEntry is an append-only log line attached to a run. Entries are
// created by the ingestion/execution path and never mutated.
type PipelineLogEntry struct {
	ID         ID                `json:"id"`
	RunID      ID                `json:"run_id"`
	Stage      PipelineStage     `json:"stage"`
	Level      LogLevel          `json:"level"`
	Message    string            `json:"message"`
	StackTrace string            `json:"stack_trace,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}
