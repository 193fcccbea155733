package metrics

import (
	"time"

	"github.com/pipewatch/pipewatch/internal/entity"
)

// PerformanceMetrics is the merged DORA + CI/CD view tagged with the
// architecture style in effect.
type PerformanceMetrics struct {
	ServiceType string `json:"serviceType"`
	DORAMetrics
	CICDMetrics
}

// ComputePerformance merges both metric families. When serviceType is empty
// it is inferred from the first run carrying one.
func ComputePerformance(runs []*entity.PipelineRun, start, end time.Time, serviceType string) PerformanceMetrics {
	if serviceType == "" {
		for _, r := range runs {
			if r.ServiceType != "" {
				serviceType = r.ServiceType
				break
			}
		}
	}
	return PerformanceMetrics{
		ServiceType: serviceType,
		DORAMetrics: ComputeDORA(runs, start, end),
		CICDMetrics: ComputeCICD(runs),
	}
}
