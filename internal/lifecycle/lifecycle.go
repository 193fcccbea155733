package lifecycle

import (
	"fmt"
	"time"

	"github.com/pipewatch/pipewatch/internal/entity"
)

// ErrInvalidTransition is returned when a requested status change is not in
// the transition table. Terminal states have no outgoing transitions; a
// retry is a new run linked via previous_pipeline_id.
var ErrInvalidTransition = fmt.Errorf("%w: status transition", entity.ErrInvalid)

var transitions = map[entity.PipelineStatus][]entity.PipelineStatus{
	entity.StatusPending: {
		entity.StatusRunning,
		entity.StatusSuccess,
		entity.StatusFailed,
		entity.StatusCancelled,
		entity.StatusSkipped,
	},
	entity.StatusRunning: {
		entity.StatusSuccess,
		entity.StatusFailed,
		entity.StatusCancelled,
		entity.StatusSkipped,
	},
}

// CanTransition reports whether from → to is defined. Re-entering the
// current state is allowed and idempotent.
func CanTransition(from, to entity.PipelineStatus) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Apply mutates run in place to the next status, deriving timestamps and
// duration. now is injected so transitions stay deterministic under test.
// errMsg is only consulted on a transition to failed.
func Apply(run *entity.PipelineRun, next entity.PipelineStatus, now time.Time, errMsg string) error {
	if !CanTransition(run.Status, next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, run.Status, next)
	}

	switch {
	case next == entity.StatusRunning:
		if run.StartedAt == nil {
			t := now
			run.StartedAt = &t
		}
	case next.IsTerminal():
		if run.FinishedAt == nil {
			t := now
			run.FinishedAt = &t
		}
		if run.StartedAt != nil {
			d := int64(run.FinishedAt.Sub(*run.StartedAt).Seconds())
			run.Duration = &d
		}
		if next == entity.StatusFailed {
			run.IsFailedDeployment = true
			if errMsg != "" {
				run.ErrorMessage = errMsg
			}
		}
	}

	run.Status = next
	return nil
}

// StageStart builds the log entry recording that a stage began.
func StageStart(runID entity.ID, stage entity.PipelineStage) *entity.PipelineLogEntry {
	return &entity.PipelineLogEntry{
		RunID:   runID,
		Stage:   stage,
		Level:   entity.LogLevelInfo,
		Message: fmt.Sprintf("stage %s started", stage),
	}
}

// StageComplete builds the log entry recording a finished stage.
func StageComplete(runID entity.ID, stage entity.PipelineStage, duration float64) *entity.PipelineLogEntry {
	return &entity.PipelineLogEntry{
		RunID:   runID,
		Stage:   stage,
		Level:   entity.LogLevelInfo,
		Message: fmt.Sprintf("stage %s completed in %.2fs", stage, duration),
	}
}

// StageError builds the error log entry and marks the failed stage on the
// run. It never changes run.Status; the status transition is its own call.
func StageError(run *entity.PipelineRun, stage entity.PipelineStage, message, stackTrace string) *entity.PipelineLogEntry {
	run.FailedStage = string(stage)
	run.ErrorMessage = message
	return &entity.PipelineLogEntry{
		RunID:      run.ID,
		Stage:      stage,
		Level:      entity.LogLevelError,
		Message:    message,
		StackTrace: stackTrace,
	}
}
