package githubapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pipewatch/pipewatch/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageForJob(t *testing.T) {
	tests := []struct {
		name     string
		expected entity.PipelineStage
	}{
		{"Build App", entity.StageBuild},
		{"unit-tests", entity.StageTest},
		{"deploy-prod", entity.StageDeploy},
		{"init env", entity.StageInit},
		{"Setup Go", entity.StageInit},
		{"cleanup workspace", entity.StageCleanup},
		{"lint", entity.StageBuild}, // default
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StageForJob(tt.name))
		})
	}
}

func TestStageTimings(t *testing.T) {
	t0 := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	at := func(offset time.Duration) *time.Time {
		ts := t0.Add(offset)
		return &ts
	}
	jobs := []Job{
		{Name: "build", StartedAt: at(0), CompletedAt: at(2 * time.Minute)},
		{Name: "build docs", StartedAt: at(0), CompletedAt: at(1 * time.Minute)},
		{Name: "test", StartedAt: at(2 * time.Minute), CompletedAt: at(5 * time.Minute)},
		{Name: "deploy", StartedAt: at(5 * time.Minute)}, // no completion, ignored
	}

	build, test, deploy := StageTimings(jobs)
	require.NotNil(t, build)
	assert.Equal(t, 180.0, *build) // both build jobs summed
	require.NotNil(t, test)
	assert.Equal(t, 180.0, *test)
	assert.Nil(t, deploy)
}

func TestClientFetchJobs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jobs": [
			{"name": "build", "status": "completed", "conclusion": "success",
			 "started_at": "2026-01-10T12:00:00Z", "completed_at": "2026-01-10T12:03:00Z",
			 "steps": [{"name": "checkout", "status": "completed", "conclusion": "success"}]}
		]}`))
	}))
	defer srv.Close()

	client := NewClient("token123")
	jobs, err := client.FetchJobs(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "build", jobs[0].Name)
	assert.Equal(t, "success", jobs[0].Conclusion)
	require.Len(t, jobs[0].Steps, 1)

	results := StageResults(jobs)
	require.Len(t, results, 1)
	assert.Equal(t, "success", results[0].Status)
	require.NotNil(t, results[0].Duration)
	assert.Equal(t, 180.0, *results[0].Duration)
}

func TestClientFetchJobsNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such run", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient("")
	_, err := client.FetchJobs(context.Background(), srv.URL)
	assert.Error(t, err)
}
