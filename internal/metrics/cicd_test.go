package metrics

import (
	"testing"

	"github.com/pipewatch/pipewatch/internal/entity"
	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }
func d(v int64) *int64     { return &v }

func TestComputeCICDEmptyWindow(t *testing.T) {
	m := ComputeCICD(nil)
	assert.Equal(t, CICDMetrics{}, m)
	assert.Equal(t, 0.0, m.AverageBuildTime)
	assert.Equal(t, 0.0, m.SuccessRate)
	assert.Equal(t, 0, m.TotalPipelines)
}

func TestComputeCICDAveragesSkipMissingFields(t *testing.T) {
	runs := []*entity.PipelineRun{
		{Status: entity.StatusSuccess, BuildTime: f(100), TestTime: f(50), Duration: d(200)},
		{Status: entity.StatusSuccess, BuildTime: f(200), Duration: d(400)},
		{Status: entity.StatusFailed}, // reports nothing, excluded from averages
	}
	m := ComputeCICD(runs)

	assert.Equal(t, 150.0, m.AverageBuildTime)
	assert.Equal(t, 50.0, m.AverageTestTime)
	assert.Equal(t, 0.0, m.AverageDeployTime)
	assert.Equal(t, 300.0, m.AverageDuration)
	assert.Equal(t, 66.67, m.SuccessRate)
	assert.Equal(t, 3, m.TotalPipelines)
	assert.Equal(t, 2, m.SuccessfulPipelines)
	assert.Equal(t, 1, m.FailedPipelines)
}

func TestComputeCICDCancelledNeitherSuccessNorFailed(t *testing.T) {
	runs := []*entity.PipelineRun{
		{Status: entity.StatusSuccess},
		{Status: entity.StatusCancelled},
		{Status: entity.StatusSkipped},
	}
	m := ComputeCICD(runs)
	assert.Equal(t, 1, m.SuccessfulPipelines)
	assert.Equal(t, 0, m.FailedPipelines)
	assert.Equal(t, 33.33, m.SuccessRate)
}
