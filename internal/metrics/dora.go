package metrics

import (
	"sort"
	"time"

	"github.com/pipewatch/pipewatch/internal/entity"
)

// DORAMetrics are the four delivery-performance indicators over one window.
type DORAMetrics struct {
	LeadTimeForChanges  float64 `json:"leadTimeForChanges"`  // hours
	DeploymentFrequency float64 `json:"deploymentFrequency"` // per day
	ChangeFailureRate   float64 `json:"changeFailureRate"`   // percent
	MeanTimeToRestore   float64 `json:"meanTimeToRestore"`   // hours
}

// ComputeDORA computes the four metrics for runs within [start, end).
func ComputeDORA(runs []*entity.PipelineRun, start, end time.Time) DORAMetrics {
	return DORAMetrics{
		LeadTimeForChanges:  leadTimeHours(runs),
		DeploymentFrequency: deploymentFrequency(runs, start, end),
		ChangeFailureRate:   changeFailureRate(runs),
		MeanTimeToRestore:   meanTimeToRestore(runs),
	}
}

func leadTimeHours(runs []*entity.PipelineRun) float64 {
	var leads []float64
	for _, r := range runs {
		if r.Status == entity.StatusSuccess && r.LeadTime != nil {
			leads = append(leads, *r.LeadTime/3600)
		}
	}
	return Average(leads)
}

func deploymentFrequency(runs []*entity.PipelineRun, start, end time.Time) float64 {
	days := end.Sub(start).Hours() / 24
	if days <= 0 {
		return 0
	}
	successes := 0
	for _, r := range runs {
		if r.Status == entity.StatusSuccess {
			successes++
		}
	}
	return Round2(float64(successes) / days)
}

func changeFailureRate(runs []*entity.PipelineRun) float64 {
	failures := 0
	for _, r := range runs {
		if r.IsFailedDeployment || r.Status == entity.StatusFailed {
			failures++
		}
	}
	return Percentage(failures, len(runs))
}

// meanTimeToRestore matches each failed deployment to the next chronological
// success and averages the finished_at gaps. A single forward scan over the
// time-ordered runs carries the set of failures still awaiting a restore.
func meanTimeToRestore(runs []*entity.PipelineRun) float64 {
	ordered := make([]*entity.PipelineRun, 0, len(runs))
	for _, r := range runs {
		if r.FinishedAt != nil {
			ordered = append(ordered, r)
		}
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].FinishedAt.Before(*ordered[j].FinishedAt)
	})

	var gaps []float64
	var unresolved []time.Time
	for _, r := range ordered {
		switch {
		case r.IsFailedDeployment:
			unresolved = append(unresolved, *r.FinishedAt)
		case r.Status == entity.StatusSuccess:
			for _, failedAt := range unresolved {
				gaps = append(gaps, r.FinishedAt.Sub(failedAt).Hours())
			}
			unresolved = unresolved[:0]
		}
	}
	return Average(gaps)
}
