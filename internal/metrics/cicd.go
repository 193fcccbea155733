package metrics

import (
	"github.com/pipewatch/pipewatch/internal/entity"
	"github.com/samber/lo"
)

// CICDMetrics are the per-window pipeline aggregates. Averages cover only
// the runs that report the underlying field.
type CICDMetrics struct {
	AverageBuildTime    float64 `json:"averageBuildTime"`
	AverageTestTime     float64 `json:"averageTestTime"`
	AverageDeployTime   float64 `json:"averageDeployTime"`
	AverageDuration     float64 `json:"averageDuration"`
	SuccessRate         float64 `json:"successRate"`
	TotalPipelines      int     `json:"totalPipelines"`
	SuccessfulPipelines int     `json:"successfulPipelines"`
	FailedPipelines     int     `json:"failedPipelines"`
}

// ComputeCICD aggregates one project window of runs.
func ComputeCICD(runs []*entity.PipelineRun) CICDMetrics {
	successful := lo.CountBy(runs, func(r *entity.PipelineRun) bool {
		return r.Status == entity.StatusSuccess
	})
	failed := lo.CountBy(runs, func(r *entity.PipelineRun) bool {
		return r.Status == entity.StatusFailed
	})

	return CICDMetrics{
		AverageBuildTime:    Average(collect(runs, func(r *entity.PipelineRun) *float64 { return r.BuildTime })),
		AverageTestTime:     Average(collect(runs, func(r *entity.PipelineRun) *float64 { return r.TestTime })),
		AverageDeployTime:   Average(collect(runs, func(r *entity.PipelineRun) *float64 { return r.DeployTime })),
		AverageDuration:     Average(collectDurations(runs)),
		SuccessRate:         Percentage(successful, len(runs)),
		TotalPipelines:      len(runs),
		SuccessfulPipelines: successful,
		FailedPipelines:     failed,
	}
}

// collect gathers a pointer field across runs, skipping unreported values.
func collect(runs []*entity.PipelineRun, field func(*entity.PipelineRun) *float64) []float64 {
	return lo.FilterMap(runs, func(r *entity.PipelineRun, _ int) (float64, bool) {
		if v := field(r); v != nil {
			return *v, true
		}
		return 0, false
	})
}

func collectDurations(runs []*entity.PipelineRun) []float64 {
	return lo.FilterMap(runs, func(r *entity.PipelineRun, _ int) (float64, bool) {
		if r.Duration != nil {
			return float64(*r.Duration), true
		}
		return 0, false
	})
}
