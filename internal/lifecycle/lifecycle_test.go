package lifecycle

import (
	"testing"
	"time"

	"github.com/pipewatch/pipewatch/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to entity.PipelineStatus
		ok       bool
	}{
		{entity.StatusPending, entity.StatusRunning, true},
		{entity.StatusPending, entity.StatusSkipped, true},
		{entity.StatusPending, entity.StatusFailed, true},
		{entity.StatusRunning, entity.StatusSuccess, true},
		{entity.StatusRunning, entity.StatusFailed, true},
		{entity.StatusRunning, entity.StatusRunning, true},
		{entity.StatusSuccess, entity.StatusRunning, false},
		{entity.StatusFailed, entity.StatusSuccess, false},
		{entity.StatusCancelled, entity.StatusPending, false},
		{entity.StatusRunning, entity.StatusPending, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.ok, CanTransition(tt.from, tt.to))
		})
	}
}

func TestApplySetsStartedAtOnce(t *testing.T) {
	run := &entity.PipelineRun{Status: entity.StatusPending}
	t0 := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	require.NoError(t, Apply(run, entity.StatusRunning, t0, ""))
	require.NotNil(t, run.StartedAt)
	assert.Equal(t, t0, *run.StartedAt)

	// Re-entering running must not reset started_at.
	require.NoError(t, Apply(run, entity.StatusRunning, t0.Add(time.Minute), ""))
	assert.Equal(t, t0, *run.StartedAt)
}

func TestApplyTerminalDerivesDuration(t *testing.T) {
	run := &entity.PipelineRun{Status: entity.StatusPending}
	t0 := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	require.NoError(t, Apply(run, entity.StatusRunning, t0, ""))
	require.NoError(t, Apply(run, entity.StatusSuccess, t0.Add(150*time.Second), ""))

	require.NotNil(t, run.FinishedAt)
	require.NotNil(t, run.Duration)
	assert.Equal(t, int64(150), *run.Duration)
	assert.Equal(t, entity.StatusSuccess, run.Status)
}

func TestApplyFailedSetsErrorAndFlag(t *testing.T) {
	run := &entity.PipelineRun{Status: entity.StatusRunning}
	now := time.Now()

	require.NoError(t, Apply(run, entity.StatusFailed, now, "compile error"))
	assert.Equal(t, "compile error", run.ErrorMessage)
	assert.True(t, run.IsFailedDeployment)
	require.NotNil(t, run.FinishedAt)
	assert.Nil(t, run.Duration) // no started_at, nothing to diff
}

func TestApplyPendingDirectlyToSkipped(t *testing.T) {
	run := &entity.PipelineRun{Status: entity.StatusPending}
	now := time.Now()

	require.NoError(t, Apply(run, entity.StatusSkipped, now, ""))
	assert.Equal(t, entity.StatusSkipped, run.Status)
	require.NotNil(t, run.FinishedAt)
}

func TestApplyOutOfTerminalRejected(t *testing.T) {
	run := &entity.PipelineRun{Status: entity.StatusSuccess}
	err := Apply(run, entity.StatusRunning, time.Now(), "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, entity.StatusSuccess, run.Status)
}

func TestStageError(t *testing.T) {
	run := &entity.PipelineRun{ID: entity.NewID("7"), Status: entity.StatusRunning}
	e := StageError(run, entity.StageBuild, "link failed", "stack")

	assert.Equal(t, "build", run.FailedStage)
	assert.Equal(t, "link failed", run.ErrorMessage)
	assert.Equal(t, entity.LogLevelError, e.Level)
	assert.Equal(t, entity.StageBuild, e.Stage)
	assert.Equal(t, entity.StatusRunning, run.Status) // untouched
}
