package metrics

import (
	"fmt"

	"github.com/pipewatch/pipewatch/internal/entity"
)

// ArchitectureComparison compares the two architecture cohorts over one
// window. DORA metrics are omitted at this granularity.
type ArchitectureComparison struct {
	Monolithic     CICDMetrics       `json:"monolithic"`
	Microservices  CICDMetrics       `json:"microservices"`
	Comparison     map[string]string `json:"comparison"`
	Recommendation string            `json:"recommendation"`
}

// CompareArchitectures groups runs by service type and aggregates each
// cohort independently.
func CompareArchitectures(runs []*entity.PipelineRun) ArchitectureComparison {
	var mono, micro []*entity.PipelineRun
	for _, r := range runs {
		switch entity.ServiceType(r.ServiceType) {
		case entity.ServiceTypeMonolithic:
			mono = append(mono, r)
		case entity.ServiceTypeMicroservices:
			micro = append(micro, r)
		}
	}

	m, s := ComputeCICD(mono), ComputeCICD(micro)
	return ArchitectureComparison{
		Monolithic:    m,
		Microservices: s,
		Comparison: map[string]string{
			"buildTimeImprovement":  improvementPct(m.AverageBuildTime, s.AverageBuildTime),
			"deployTimeImprovement": improvementPct(m.AverageDeployTime, s.AverageDeployTime),
			"durationImprovement":   improvementPct(m.AverageDuration, s.AverageDuration),
			"successRateDelta":      fmt.Sprintf("%.2f%%", Round2(s.SuccessRate-m.SuccessRate)),
		},
		Recommendation: recommendCohort(m, s),
	}
}

// improvementPct formats (baseline − target)/baseline × 100 with a trailing
// percent sign. A zero baseline yields 0.00%.
func improvementPct(baseline, target float64) string {
	if baseline == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", Round2((baseline-target)/baseline*100))
}

// recommendCohort is a simple point count: each of lower build time, higher
// success rate, lower deploy time earns microservices a point, otherwise the
// point goes to monolithic.
func recommendCohort(mono, micro CICDMetrics) string {
	points := 0
	if micro.AverageBuildTime < mono.AverageBuildTime {
		points++
	}
	if micro.SuccessRate > mono.SuccessRate {
		points++
	}
	if micro.AverageDeployTime < mono.AverageDeployTime {
		points++
	}

	switch {
	case points >= 2:
		return "Microservices architecture shows better overall pipeline performance for your workloads."
	case mono.SuccessRate > micro.SuccessRate:
		return "Monolithic architecture shows higher pipeline stability for your workloads."
	default:
		return "Both architectures show comparable pipeline performance."
	}
}

// ArchitectureSelection is the weighted scoring path used for
// architecture-selection reports.
type ArchitectureSelection struct {
	RecommendedArchitecture string  `json:"recommended_architecture"`
	ImprovementPct          float64 `json:"potential_improvement_percentage"`
	MonolithicScore         int     `json:"monolithic_score"`
	MicroservicesScore      int     `json:"microservices_score"`
}

// Factor weights for the selection score.
const (
	weightBuildTime   = 3
	weightDeployTime  = 3
	weightSuccessRate = 4
	weightDuration    = 2
)

// SelectArchitecture scores both cohorts with explicit integer weights and
// picks the higher total; ties go to monolithic.
func SelectArchitecture(mono, micro CICDMetrics) ArchitectureSelection {
	monoScore, microScore := 0, 0
	award := func(microBetter bool, weight int) {
		if microBetter {
			microScore += weight
		} else {
			monoScore += weight
		}
	}
	award(micro.AverageBuildTime < mono.AverageBuildTime, weightBuildTime)
	award(micro.AverageDeployTime < mono.AverageDeployTime, weightDeployTime)
	award(micro.SuccessRate > mono.SuccessRate, weightSuccessRate)
	award(micro.AverageDuration < mono.AverageDuration, weightDuration)

	winner, loser := mono, micro
	recommended := string(entity.ServiceTypeMonolithic)
	if microScore > monoScore {
		winner, loser = micro, mono
		recommended = string(entity.ServiceTypeMicroservices)
	}

	return ArchitectureSelection{
		RecommendedArchitecture: recommended,
		ImprovementPct:          selectionImprovement(winner, loser),
		MonolithicScore:         monoScore,
		MicroservicesScore:      microScore,
	}
}

// selectionImprovement is the unweighted mean of the build-time and
// deploy-time percentage deltas and the success-rate point delta.
func selectionImprovement(winner, loser CICDMetrics) float64 {
	timeDelta := func(loserV, winnerV float64) float64 {
		if loserV == 0 {
			return 0
		}
		return (loserV - winnerV) / loserV * 100
	}
	build := timeDelta(loser.AverageBuildTime, winner.AverageBuildTime)
	deploy := timeDelta(loser.AverageDeployTime, winner.AverageDeployTime)
	success := winner.SuccessRate - loser.SuccessRate
	return Round2((build + deploy + success) / 3)
}
