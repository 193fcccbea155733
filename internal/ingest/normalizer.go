package ingest

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/pipewatch/pipewatch/internal/entity"
	"github.com/pipewatch/pipewatch/internal/utils"
)

// Normalize converts one provider payload into a canonical PipelineRun draft
// for an already-resolved project. It never fails on unknown provider
// vocabulary; only a payload that cannot be decoded at all is an error.
func Normalize(provider entity.Provider, raw []byte, projectID entity.ID) (*entity.PipelineRun, error) {
	switch provider {
	case entity.ProviderGitHub:
		return normalizeGitHub(raw, projectID)
	case entity.ProviderGitLab:
		return normalizeGitLab(raw, projectID)
	case entity.ProviderGeneric:
		return normalizeGeneric(raw, projectID)
	}
	return nil, fmt.Errorf("%w: unknown provider %q", entity.ErrInvalid, provider)
}

type githubWorkflowRun struct {
	ID           int64      `json:"id"`
	Status       string     `json:"status"`
	Conclusion   string     `json:"conclusion"`
	Event        string     `json:"event"`
	HeadBranch   string     `json:"head_branch"`
	HeadSHA      string     `json:"head_sha"`
	RunStartedAt *time.Time `json:"run_started_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
	JobsURL      string     `json:"jobs_url"`
	HeadCommit   struct {
		Message string `json:"message"`
		Author  struct {
			Name string `json:"name"`
		} `json:"author"`
	} `json:"head_commit"`
}

type githubPayload struct {
	Action      string             `json:"action"`
	WorkflowRun *githubWorkflowRun `json:"workflow_run"`
	Repository  struct {
		HTMLURL string `json:"html_url"`
	} `json:"repository"`
}

func normalizeGitHub(raw []byte, projectID entity.ID) (*entity.PipelineRun, error) {
	var payload githubPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode github payload: %v", entity.ErrInvalid, err)
	}
	wr := payload.WorkflowRun
	if wr == nil {
		// Some senders post the workflow_run object itself.
		wr = &githubWorkflowRun{}
		if err := json.Unmarshal(raw, wr); err != nil {
			return nil, fmt.Errorf("%w: decode github workflow_run: %v", entity.ErrInvalid, err)
		}
	}

	run := &entity.PipelineRun{
		ProjectID:          projectID,
		Provider:           entity.ProviderGitHub,
		Status:             MapGitHubStatus(wr.Status, wr.Conclusion),
		Trigger:            MapTrigger(wr.Event),
		Branch:             wr.HeadBranch,
		CommitSHA:          wr.HeadSHA,
		CommitMessage:      wr.HeadCommit.Message,
		Author:             wr.HeadCommit.Author.Name,
		RepositoryURL:      payload.Repository.HTMLURL,
		StartedAt:          wr.RunStartedAt,
		IsFailedDeployment: wr.Conclusion == "failure",
	}
	if wr.RunStartedAt != nil && wr.UpdatedAt != nil {
		lead := wr.UpdatedAt.Sub(*wr.RunStartedAt).Seconds()
		run.LeadTime = &lead
	}
	if run.Status.IsTerminal() && wr.UpdatedAt != nil {
		run.FinishedAt = wr.UpdatedAt
		if run.StartedAt != nil {
			d := int64(run.FinishedAt.Sub(*run.StartedAt).Seconds())
			run.Duration = &d
		}
	}
	return run, nil
}

type gitlabAttributes struct {
	ID         int64    `json:"id"`
	Status     string   `json:"status"`
	SHA        string   `json:"sha"`
	Ref        string   `json:"ref"`
	Source     string   `json:"source"`
	Duration   *float64 `json:"duration"`
	CreatedAt  string   `json:"created_at"`
	FinishedAt string   `json:"finished_at"`
}

type gitlabPayload struct {
	ObjectAttributes *gitlabAttributes `json:"object_attributes"`
	Project          struct {
		WebURL string `json:"web_url"`
	} `json:"project"`
	User struct {
		Name string `json:"name"`
	} `json:"user"`
	Commits []struct {
		Message string `json:"message"`
	} `json:"commits"`
}

func normalizeGitLab(raw []byte, projectID entity.ID) (*entity.PipelineRun, error) {
	var payload gitlabPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode gitlab payload: %v", entity.ErrInvalid, err)
	}
	attrs := payload.ObjectAttributes
	if attrs == nil {
		attrs = &gitlabAttributes{}
		if err := json.Unmarshal(raw, attrs); err != nil {
			return nil, fmt.Errorf("%w: decode gitlab attributes: %v", entity.ErrInvalid, err)
		}
	}

	run := &entity.PipelineRun{
		ProjectID:     projectID,
		Provider:      entity.ProviderGitLab,
		Status:        MapGitLabStatus(attrs.Status),
		Trigger:       MapTrigger(attrs.Source),
		Branch:        utils.StripRefPrefix(attrs.Ref),
		CommitSHA:     attrs.SHA,
		Author:        payload.User.Name,
		RepositoryURL: payload.Project.WebURL,
	}
	if len(payload.Commits) > 0 {
		run.CommitMessage = payload.Commits[0].Message
	}
	if t := parseGitLabTime(attrs.CreatedAt); t != nil {
		run.StartedAt = t
	}
	if run.Status.IsTerminal() {
		if t := parseGitLabTime(attrs.FinishedAt); t != nil {
			run.FinishedAt = t
		}
		if attrs.Duration != nil {
			d := int64(*attrs.Duration)
			run.Duration = &d
		} else if run.StartedAt != nil && run.FinishedAt != nil {
			d := int64(run.FinishedAt.Sub(*run.StartedAt).Seconds())
			run.Duration = &d
		}
	}
	run.IsFailedDeployment = run.Status == entity.StatusFailed
	return run, nil
}

// gitlabTimeLayouts covers the two timestamp formats GitLab hooks are known
// to emit.
var gitlabTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05 MST",
	"2006-01-02 15:04:05 -0700",
}

func parseGitLabTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range gitlabTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func normalizeGeneric(raw []byte, projectID entity.ID) (*entity.PipelineRun, error) {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode generic payload: %v", entity.ErrInvalid, err)
	}

	run := &entity.PipelineRun{
		ProjectID:     projectID,
		Provider:      entity.ProviderGeneric,
		Status:        MapGenericStatus(stringField(payload, "status")),
		Trigger:       MapTrigger(utils.FirstNonEmpty(stringField(payload, "trigger"), stringField(payload, "event"))),
		Branch:        utils.StripRefPrefix(utils.FirstNonEmpty(stringField(payload, "branch"), stringField(payload, "ref"))),
		CommitSHA:     utils.FirstNonEmpty(stringField(payload, "commit_sha"), stringField(payload, "sha"), stringField(payload, "after")),
		CommitMessage: utils.FirstNonEmpty(stringField(payload, "commit_message"), stringField(payload, "message")),
		Author:        stringField(payload, "author"),
		RepositoryURL: utils.FirstNonEmpty(stringField(payload, "repository_url"), stringField(payload, "repo_url")),
	}
	run.BuildTime = numberField(payload, "build_time")
	run.TestTime = numberField(payload, "test_time")
	run.DeployTime = numberField(payload, "deploy_time")
	run.LeadTime = numberField(payload, "lead_time")
	run.StartedAt = timeField(payload, "started_at")
	if run.Status.IsTerminal() {
		run.FinishedAt = timeField(payload, "finished_at")
		if run.StartedAt != nil && run.FinishedAt != nil {
			d := int64(run.FinishedAt.Sub(*run.StartedAt).Seconds())
			run.Duration = &d
		}
	}
	run.IsFailedDeployment = run.Status == entity.StatusFailed
	return run, nil
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func numberField(m map[string]any, key string) *float64 {
	switch v := m[key].(type) {
	case float64:
		return &v
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return &f
		}
	}
	return nil
}

func timeField(m map[string]any, key string) *time.Time {
	s, ok := m[key].(string)
	if !ok || s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	return nil
}

// ExtractRepositoryURL pulls the repository URL out of a raw payload before
// any normalization, so the caller can resolve the owning project.
func ExtractRepositoryURL(provider entity.Provider, raw []byte) string {
	switch provider {
	case entity.ProviderGitHub:
		var payload githubPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return ""
		}
		return payload.Repository.HTMLURL
	case entity.ProviderGitLab:
		var payload gitlabPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return ""
		}
		return payload.Project.WebURL
	case entity.ProviderGeneric:
		var payload map[string]any
		if err := json.Unmarshal(raw, &payload); err != nil {
			return ""
		}
		return utils.FirstNonEmpty(stringField(payload, "repository_url"), stringField(payload, "repo_url"))
	}
	return ""
}

// ExtractEventID returns the provider's own id for the event, used as an
// idempotency key when no delivery header is present.
func ExtractEventID(provider entity.Provider, raw []byte) string {
	switch provider {
	case entity.ProviderGitHub:
		var payload githubPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return ""
		}
		if payload.WorkflowRun != nil && payload.WorkflowRun.ID != 0 {
			return strconv.FormatInt(payload.WorkflowRun.ID, 10)
		}
	case entity.ProviderGitLab:
		var payload gitlabPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return ""
		}
		if payload.ObjectAttributes != nil && payload.ObjectAttributes.ID != 0 {
			return strconv.FormatInt(payload.ObjectAttributes.ID, 10)
		}
	}
	return ""
}

// ExtractJobsURL returns the GitHub jobs listing URL for stage enrichment.
func ExtractJobsURL(raw []byte) string {
	var payload githubPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	if payload.WorkflowRun != nil {
		return payload.WorkflowRun.JobsURL
	}
	return ""
}
