package usecase

import (
	"context"
	"fmt"

	"github.com/pipewatch/pipewatch/internal/entity"
	"github.com/pipewatch/pipewatch/internal/lifecycle"
	"github.com/pipewatch/pipewatch/internal/repository"
	"github.com/samber/do"
)

type StageEvent string

const (
	StageEventStart    StageEvent = "start"
	StageEventComplete StageEvent = "complete"
	StageEventError    StageEvent = "error"
)

type LogStageInput struct {
	RunID      entity.ID
	Stage      entity.PipelineStage
	Event      StageEvent
	Message    string
	StackTrace string
	Duration   float64
}

// LogStageUsecase appends stage log entries. A stage error also marks the
// run's failed stage, but never changes its status; that is a separate
// transition.
type LogStageUsecase interface {
	Execute(ctx context.Context, input LogStageInput) (*entity.PipelineLogEntry, error)
}

type logStageUsecaseImpl struct {
	runs repository.PipelineRunRepository
	logs repository.PipelineLogRepository
}

// Execute implements LogStageUsecase.
func (u *logStageUsecaseImpl) Execute(ctx context.Context, input LogStageInput) (*entity.PipelineLogEntry, error) {
	var entry *entity.PipelineLogEntry
	switch input.Event {
	case StageEventStart:
		entry = lifecycle.StageStart(input.RunID, input.Stage)
	case StageEventComplete:
		entry = lifecycle.StageComplete(input.RunID, input.Stage, input.Duration)
	case StageEventError:
		// marking the failed stage shares the run's transition lock
		_, err := u.runs.Transition(ctx, input.RunID, func(run *entity.PipelineRun) error {
			entry = lifecycle.StageError(run, input.Stage, input.Message, input.StackTrace)
			return nil
		})
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: stage event %q", entity.ErrInvalid, input.Event)
	}

	if input.Message != "" && input.Event != StageEventError {
		entry.Message = input.Message
	}
	return u.logs.Append(ctx, entry)
}

func NewLogStageUsecase(i *do.Injector) (LogStageUsecase, error) {
	return &logStageUsecaseImpl{
		runs: do.MustInvoke[repository.PipelineRunRepository](i),
		logs: do.MustInvoke[repository.PipelineLogRepository](i),
	}, nil
}
