package metrics

import (
	"testing"

	"github.com/pipewatch/pipewatch/internal/entity"
	"github.com/stretchr/testify/assert"
)

func cohortRun(service string, status entity.PipelineStatus, build, deploy float64) *entity.PipelineRun {
	return &entity.PipelineRun{
		ServiceType: service,
		Status:      status,
		BuildTime:   f(build),
		DeployTime:  f(deploy),
		Duration:    d(int64(build + deploy)),
	}
}

func TestCompareArchitecturesGroupsCohorts(t *testing.T) {
	runs := []*entity.PipelineRun{
		cohortRun("monolithic", entity.StatusSuccess, 600, 120),
		cohortRun("monolithic", entity.StatusFailed, 700, 160),
		cohortRun("microservices", entity.StatusSuccess, 300, 60),
		cohortRun("microservices", entity.StatusSuccess, 340, 80),
		{ServiceType: "serverless", Status: entity.StatusSuccess}, // neither cohort
	}

	c := CompareArchitectures(runs)
	assert.Equal(t, 2, c.Monolithic.TotalPipelines)
	assert.Equal(t, 2, c.Microservices.TotalPipelines)
	assert.Equal(t, 650.0, c.Monolithic.AverageBuildTime)
	assert.Equal(t, 320.0, c.Microservices.AverageBuildTime)

	// (650 − 320) / 650 × 100 = 50.77%
	assert.Equal(t, "50.77%", c.Comparison["buildTimeImprovement"])
	assert.Equal(t, "50.00%", c.Comparison["deployTimeImprovement"])
	assert.Equal(t, "50.00%", c.Comparison["successRateDelta"])
	assert.Contains(t, c.Recommendation, "Microservices")
}

func TestCompareArchitecturesMonolithicWinsOnStability(t *testing.T) {
	runs := []*entity.PipelineRun{
		cohortRun("monolithic", entity.StatusSuccess, 300, 60),
		cohortRun("microservices", entity.StatusFailed, 400, 90),
	}
	c := CompareArchitectures(runs)
	assert.Contains(t, c.Recommendation, "Monolithic")
}

func TestCompareArchitecturesEmptyCohorts(t *testing.T) {
	c := CompareArchitectures(nil)
	assert.Equal(t, "0.00%", c.Comparison["buildTimeImprovement"])
	assert.Contains(t, c.Recommendation, "comparable")
}

func TestSelectArchitectureWeights(t *testing.T) {
	mono := CICDMetrics{AverageBuildTime: 600, AverageDeployTime: 200, SuccessRate: 85, AverageDuration: 900}
	micro := CICDMetrics{AverageBuildTime: 300, AverageDeployTime: 100, SuccessRate: 90, AverageDuration: 500}

	s := SelectArchitecture(mono, micro)
	assert.Equal(t, "microservices", s.RecommendedArchitecture)
	assert.Equal(t, 12, s.MicroservicesScore) // 3+3+4+2
	assert.Equal(t, 0, s.MonolithicScore)
	// mean( (600−300)/600×100, (200−100)/200×100, 90−85 ) = mean(50, 50, 5)
	assert.Equal(t, 35.0, s.ImprovementPct)
}

func TestSelectArchitectureTieGoesToMonolithic(t *testing.T) {
	same := CICDMetrics{AverageBuildTime: 300, AverageDeployTime: 100, SuccessRate: 90, AverageDuration: 400}
	s := SelectArchitecture(same, same)
	// every factor falls to the default branch
	assert.Equal(t, "monolithic", s.RecommendedArchitecture)
	assert.Equal(t, 12, s.MonolithicScore)
	assert.Equal(t, 0, s.MicroservicesScore)
	assert.Equal(t, 0.0, s.ImprovementPct)
}

func TestSelectArchitectureSplitFactors(t *testing.T) {
	mono := CICDMetrics{AverageBuildTime: 200, AverageDeployTime: 100, SuccessRate: 80, AverageDuration: 900}
	micro := CICDMetrics{AverageBuildTime: 300, AverageDeployTime: 150, SuccessRate: 95, AverageDuration: 500}

	// mono wins build(3) + deploy(3) = 6; micro wins success(4) + duration(2) = 6
	s := SelectArchitecture(mono, micro)
	assert.Equal(t, "monolithic", s.RecommendedArchitecture)
	assert.Equal(t, 6, s.MonolithicScore)
	assert.Equal(t, 6, s.MicroservicesScore)
}
