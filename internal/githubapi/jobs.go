package githubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pipewatch/pipewatch/internal/entity"
)

// Job is one entry from a workflow run's jobs listing.
type Job struct {
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	Conclusion  string     `json:"conclusion"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	Steps       []Step     `json:"steps"`
}

type Step struct {
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	Conclusion  string     `json:"conclusion"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// JobFetcher retrieves job detail for a workflow run. Satisfied by Client;
// tests substitute their own.
type JobFetcher interface {
	FetchJobs(ctx context.Context, jobsURL string) ([]Job, error)
}

type Client struct {
	http  *retryablehttp.Client
	token string
}

// NewClient builds a fetcher authenticated with a provider token. Retries
// with backoff are handled by retryablehttp; transient GitHub API errors are
// the common case here.
func NewClient(token string) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = 15 * time.Second
	rc.Logger = nil
	return &Client{http: rc, token: token}
}

// FetchJobs implements JobFetcher.
func (c *Client) FetchJobs(ctx context.Context, jobsURL string) ([]Job, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, jobsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build jobs request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch jobs: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return nil, fmt.Errorf("fetch jobs: status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload struct {
		Jobs []Job `json:"jobs"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}
	return payload.Jobs, nil
}

// StageForJob maps a job name to a canonical stage by substring match.
func StageForJob(name string) entity.PipelineStage {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "build"):
		return entity.StageBuild
	case strings.Contains(n, "test"):
		return entity.StageTest
	case strings.Contains(n, "deploy"):
		return entity.StageDeploy
	case strings.Contains(n, "init"), strings.Contains(n, "setup"):
		return entity.StageInit
	case strings.Contains(n, "clean"):
		return entity.StageCleanup
	}
	return entity.StageBuild
}

// StageResults converts jobs into ordered stage results with derived
// durations.
func StageResults(jobs []Job) []entity.StageResult {
	results := make([]entity.StageResult, 0, len(jobs))
	for _, j := range jobs {
		r := entity.StageResult{
			Name:        j.Name,
			Status:      jobStatus(j),
			StartedAt:   j.StartedAt,
			CompletedAt: j.CompletedAt,
		}
		if j.StartedAt != nil && j.CompletedAt != nil {
			dur := j.CompletedAt.Sub(*j.StartedAt).Seconds()
			r.Duration = &dur
		}
		results = append(results, r)
	}
	return results
}

// StageTimings sums job durations per canonical stage. Stages no job maps to
// stay nil so metric averages exclude them.
func StageTimings(jobs []Job) (build, test, deploy *float64) {
	add := func(total *float64, v float64) *float64 {
		if total == nil {
			return &v
		}
		sum := *total + v
		return &sum
	}
	for _, j := range jobs {
		if j.StartedAt == nil || j.CompletedAt == nil {
			continue
		}
		dur := j.CompletedAt.Sub(*j.StartedAt).Seconds()
		switch StageForJob(j.Name) {
		case entity.StageBuild:
			build = add(build, dur)
		case entity.StageTest:
			test = add(test, dur)
		case entity.StageDeploy:
			deploy = add(deploy, dur)
		}
	}
	return build, test, deploy
}

func jobStatus(j Job) string {
	if j.Conclusion != "" {
		return j.Conclusion
	}
	return j.Status
}
