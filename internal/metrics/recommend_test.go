package metrics

import (
	"testing"

	"github.com/pipewatch/pipewatch/internal/entity"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(recs []entity.Recommendation) []string {
	return lo.Map(recs, func(r entity.Recommendation, _ int) string { return r.Title })
}

func TestGenerateRecommendationsLayeredBuildAdvice(t *testing.T) {
	// build_time = 650 trips both the >600s and the >300s rule.
	m := PerformanceMetrics{
		CICDMetrics: CICDMetrics{AverageBuildTime: 650, SuccessRate: 95},
		DORAMetrics: DORAMetrics{DeploymentFrequency: 2},
	}
	recs := GenerateRecommendations(m)

	got := titles(recs)
	assert.Contains(t, got, "Optimize Build Time")
	assert.Contains(t, got, "Implement Advanced Caching")

	byTitle := lo.KeyBy(recs, func(r entity.Recommendation) string { return r.Title })
	assert.Equal(t, entity.PriorityHigh, byTitle["Optimize Build Time"].Priority)
	assert.Equal(t, entity.PriorityMedium, byTitle["Implement Advanced Caching"].Priority)
}

func TestGenerateRecommendationsThresholdsAreStrict(t *testing.T) {
	// Values exactly at each threshold fire nothing.
	m := PerformanceMetrics{
		CICDMetrics: CICDMetrics{
			AverageBuildTime:  600,
			AverageTestTime:   300,
			AverageDeployTime: 180,
			SuccessRate:       80,
		},
		DORAMetrics: DORAMetrics{
			LeadTimeForChanges:  24,
			DeploymentFrequency: 1,
			ChangeFailureRate:   15,
		},
	}
	recs := GenerateRecommendations(m)
	// 600 is not > 600, but it is > 300: only the caching rule fires.
	require.Len(t, recs, 1)
	assert.Equal(t, "Implement Advanced Caching", recs[0].Title)
}

func TestGenerateRecommendationsStabilityIsCritical(t *testing.T) {
	m := PerformanceMetrics{
		CICDMetrics: CICDMetrics{SuccessRate: 60},
		DORAMetrics: DORAMetrics{DeploymentFrequency: 3},
	}
	recs := GenerateRecommendations(m)
	require.Len(t, recs, 1)
	assert.Equal(t, "Improve Pipeline Stability", recs[0].Title)
	assert.Equal(t, entity.PriorityCritical, recs[0].Priority)
}

func TestGenerateRecommendationsOrderFollowsRules(t *testing.T) {
	m := PerformanceMetrics{
		CICDMetrics: CICDMetrics{AverageBuildTime: 700, AverageTestTime: 400, SuccessRate: 50},
		DORAMetrics: DORAMetrics{ChangeFailureRate: 40},
	}
	got := titles(GenerateRecommendations(m))
	expected := []string{
		"Optimize Build Time",
		"Optimize Test Execution",
		"Improve Pipeline Stability",
		"Increase Deployment Frequency",
		"Reduce Change Failure Rate",
		"Implement Advanced Caching",
	}
	assert.Equal(t, expected, got)
}

func TestGenerateRecommendationsHealthyPipeline(t *testing.T) {
	m := PerformanceMetrics{
		CICDMetrics: CICDMetrics{AverageBuildTime: 120, AverageTestTime: 60, AverageDeployTime: 30, SuccessRate: 99},
		DORAMetrics: DORAMetrics{LeadTimeForChanges: 2, DeploymentFrequency: 4, ChangeFailureRate: 1},
	}
	assert.Empty(t, GenerateRecommendations(m))
}
