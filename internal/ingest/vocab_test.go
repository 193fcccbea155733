package ingest

import (
	"testing"

	"github.com/pipewatch/pipewatch/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestMapGitHubStatus(t *testing.T) {
	tests := []struct {
		status     string
		conclusion string
		expected   entity.PipelineStatus
	}{
		{"completed", "success", entity.StatusSuccess},
		{"completed", "failure", entity.StatusFailed},
		{"completed", "cancelled", entity.StatusCancelled},
		{"completed", "skipped", entity.StatusSkipped},
		{"completed", "neutral", entity.StatusSuccess},
		{"completed", "", entity.StatusSuccess},
		{"in_progress", "", entity.StatusRunning},
		{"queued", "", entity.StatusPending},
		{"pending", "", entity.StatusPending},
		{"requested", "", entity.StatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.status+"/"+tt.conclusion, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapGitHubStatus(tt.status, tt.conclusion))
		})
	}
}

func TestMapGitLabStatus(t *testing.T) {
	tests := []struct {
		status   string
		expected entity.PipelineStatus
	}{
		{"created", entity.StatusPending},
		{"waiting_for_resource", entity.StatusPending},
		{"preparing", entity.StatusPending},
		{"pending", entity.StatusPending},
		{"manual", entity.StatusPending},
		{"running", entity.StatusRunning},
		{"success", entity.StatusSuccess},
		{"failed", entity.StatusFailed},
		{"canceled", entity.StatusCancelled},
		{"skipped", entity.StatusSkipped},
		{"brand_new_status", entity.StatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapGitLabStatus(tt.status))
		})
	}
}

func TestMapTrigger(t *testing.T) {
	tests := []struct {
		trigger  string
		expected entity.PipelineTrigger
	}{
		{"push", entity.TriggerPush},
		{"pull_request", entity.TriggerPullRequest},
		{"merge_request", entity.TriggerPullRequest},
		{"manual", entity.TriggerManual},
		{"workflow_dispatch", entity.TriggerManual},
		{"schedule", entity.TriggerSchedule},
		{"tag", entity.TriggerTag},
		{"tag_push", entity.TriggerTag},
		{"something_else", entity.TriggerPush},
		{"", entity.TriggerPush},
	}
	for _, tt := range tests {
		t.Run(tt.trigger, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapTrigger(tt.trigger))
		})
	}
}
