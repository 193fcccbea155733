package ingest

import "github.com/pipewatch/pipewatch/internal/entity"

// Provider vocabularies are plain lookup tables consulted by one shared
// normalization path. Adding a provider means adding a table, not a type.
// Unknown strings always fall back to the most conservative canonical value
// so a provider shipping a new status can never break ingestion.

// githubConclusions maps workflow_run.conclusion for completed runs.
var githubConclusions = map[string]entity.PipelineStatus{
	"success":   entity.StatusSuccess,
	"failure":   entity.StatusFailed,
	"cancelled": entity.StatusCancelled,
	"skipped":   entity.StatusSkipped,
}

// genericStatuses maps in-flight GitHub statuses and the generic adapter's
// status field.
var genericStatuses = map[string]entity.PipelineStatus{
	"pending":     entity.StatusPending,
	"queued":      entity.StatusPending,
	"running":     entity.StatusRunning,
	"in_progress": entity.StatusRunning,
	"success":     entity.StatusSuccess,
	"failed":      entity.StatusFailed,
	"failure":     entity.StatusFailed,
	"cancelled":   entity.StatusCancelled,
	"skipped":     entity.StatusSkipped,
}

var gitlabStatuses = map[string]entity.PipelineStatus{
	"created":              entity.StatusPending,
	"waiting_for_resource": entity.StatusPending,
	"preparing":            entity.StatusPending,
	"pending":              entity.StatusPending,
	"manual":               entity.StatusPending,
	"running":              entity.StatusRunning,
	"success":              entity.StatusSuccess,
	"failed":               entity.StatusFailed,
	"canceled":             entity.StatusCancelled,
	"skipped":              entity.StatusSkipped,
}

// triggers is shared across all providers.
var triggers = map[string]entity.PipelineTrigger{
	"push":              entity.TriggerPush,
	"pull_request":      entity.TriggerPullRequest,
	"merge_request":     entity.TriggerPullRequest,
	"merge_request_event": entity.TriggerPullRequest,
	"manual":            entity.TriggerManual,
	"workflow_dispatch": entity.TriggerManual,
	"web":               entity.TriggerManual,
	"schedule":          entity.TriggerSchedule,
	"scheduled":         entity.TriggerSchedule,
	"tag":               entity.TriggerTag,
	"tag_push":          entity.TriggerTag,
}

// MapGitHubStatus resolves the two-level (status, conclusion) pair GitHub
// reports on a workflow_run.
func MapGitHubStatus(status, conclusion string) entity.PipelineStatus {
	if status == "completed" {
		if s, ok := githubConclusions[conclusion]; ok {
			return s
		}
		return entity.StatusSuccess
	}
	return MapGenericStatus(status)
}

func MapGitLabStatus(status string) entity.PipelineStatus {
	if s, ok := gitlabStatuses[status]; ok {
		return s
	}
	return entity.StatusPending
}

func MapGenericStatus(status string) entity.PipelineStatus {
	if s, ok := genericStatuses[status]; ok {
		return s
	}
	return entity.StatusPending
}

func MapTrigger(trigger string) entity.PipelineTrigger {
	if t, ok := triggers[trigger]; ok {
		return t
	}
	return entity.TriggerPush
}
