package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pipewatch/pipewatch/internal/entity"
	"github.com/pipewatch/pipewatch/internal/githubapi"
	"github.com/pipewatch/pipewatch/internal/ingest"
	"github.com/pipewatch/pipewatch/internal/lifecycle"
	"github.com/pipewatch/pipewatch/internal/repository"
	"github.com/pipewatch/pipewatch/internal/utils"
	"github.com/rs/zerolog"
	"github.com/samber/do"
)

type IngestInput struct {
	Provider entity.Provider
	Raw      []byte
	// DeliveryID is the provider's delivery header when present; it takes
	// precedence over the event id extracted from the payload.
	DeliveryID string
	// ProjectID names the owning project out-of-band (generic provider);
	// when empty, the project is resolved from the payload's repository URL.
	ProjectID entity.ID
}

type IngestResult struct {
	Run       *entity.PipelineRun
	Duplicate bool
}

type IngestEventUsecase interface {
	Execute(ctx context.Context, input IngestInput) (*IngestResult, error)
}

type ingestEventUsecaseImpl struct {
	projects   repository.ProjectRepository
	runs       repository.PipelineRunRepository
	logs       repository.PipelineLogRepository
	deliveries repository.WebhookDeliveryRepository
	jobFetcher githubapi.JobFetcher
}

// Execute implements IngestEventUsecase. Resolution failure rejects the
// delivery before anything is written; everything after the run is stored is
// best-effort enrichment that can only degrade, never roll back.
func (u *ingestEventUsecaseImpl) Execute(ctx context.Context, input IngestInput) (*IngestResult, error) {
	project, err := u.resolveProject(ctx, input)
	if err != nil {
		return nil, err
	}

	eventID := utils.FirstNonEmpty(input.DeliveryID, ingest.ExtractEventID(input.Provider, input.Raw))
	if eventID == "" {
		// no provider key means no dedup is possible for this event
		eventID = uuid.NewString()
	}
	if err := u.deliveries.Reserve(ctx, input.Provider, eventID); err != nil {
		if errors.Is(err, entity.ErrDuplicate) {
			return &IngestResult{Duplicate: true}, nil
		}
		return nil, err
	}

	draft, err := ingest.Normalize(input.Provider, input.Raw, project.ID)
	if err != nil {
		return nil, err
	}
	draft.ServiceType = string(project.ServiceType)
	draft.ArchitectureID = project.ArchitectureID

	run, err := u.runs.Create(ctx, draft)
	if err != nil {
		return nil, err
	}
	if err := u.deliveries.AttachRun(ctx, input.Provider, eventID, run.ID); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("run_id", run.ID.String()).Msg("attach delivery")
	}

	if input.Provider == entity.ProviderGitHub {
		run = u.enrichFromJobs(ctx, run, ingest.ExtractJobsURL(input.Raw))
	}

	return &IngestResult{Run: run}, nil
}

func (u *ingestEventUsecaseImpl) resolveProject(ctx context.Context, input IngestInput) (*entity.Project, error) {
	if input.ProjectID != "" {
		return u.projects.GetByID(ctx, input.ProjectID)
	}
	url := ingest.ExtractRepositoryURL(input.Provider, input.Raw)
	if url == "" {
		return nil, entity.ErrInvalid
	}
	return u.projects.GetByRepositoryURL(ctx, url)
}

// enrichFromJobs adds stage detail from the provider's jobs listing. Fetch
// failure is logged and skipped: the stored run stands either way.
func (u *ingestEventUsecaseImpl) enrichFromJobs(ctx context.Context, run *entity.PipelineRun, jobsURL string) *entity.PipelineRun {
	log := zerolog.Ctx(ctx)
	if jobsURL == "" || u.jobFetcher == nil {
		return run
	}

	jobs, err := u.jobFetcher.FetchJobs(ctx, jobsURL)
	if err != nil {
		log.Warn().Err(err).Str("run_id", run.ID.String()).Msg("job detail fetch failed, skipping enrichment")
		return run
	}

	run.Stages = githubapi.StageResults(jobs)
	run.BuildTime, run.TestTime, run.DeployTime = githubapi.StageTimings(jobs)

	for _, job := range jobs {
		stage := githubapi.StageForJob(job.Name)
		var entry *entity.PipelineLogEntry
		switch {
		case job.Conclusion == "failure":
			entry = lifecycle.StageError(run, stage, "job "+job.Name+" failed", "")
		case job.CompletedAt != nil && job.StartedAt != nil:
			entry = lifecycle.StageComplete(run.ID, stage, job.CompletedAt.Sub(*job.StartedAt).Seconds())
		default:
			entry = lifecycle.StageStart(run.ID, stage)
		}
		if _, err := u.logs.Append(ctx, entry); err != nil {
			log.Warn().Err(err).Str("run_id", run.ID.String()).Msg("append stage log")
		}
	}

	updated, err := u.runs.Update(ctx, run)
	if err != nil {
		log.Warn().Err(err).Str("run_id", run.ID.String()).Msg("persist enrichment")
		return run
	}
	return updated
}

func NewIngestEventUsecase(i *do.Injector) (IngestEventUsecase, error) {
	return &ingestEventUsecaseImpl{
		projects:   do.MustInvoke[repository.ProjectRepository](i),
		runs:       do.MustInvoke[repository.PipelineRunRepository](i),
		logs:       do.MustInvoke[repository.PipelineLogRepository](i),
		deliveries: do.MustInvoke[repository.WebhookDeliveryRepository](i),
		jobFetcher: do.MustInvoke[githubapi.JobFetcher](i),
	}, nil
}
