package metrics

import (
	"testing"
	"time"

	"github.com/pipewatch/pipewatch/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTrendsContiguousBuckets(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 5)

	runs := []*entity.PipelineRun{
		{Status: entity.StatusSuccess, CreatedAt: start.Add(2 * time.Hour)},
		{Status: entity.StatusFailed, CreatedAt: start.AddDate(0, 0, 2).Add(time.Hour)},
	}

	points, err := ComputeTrends(runs, start, end, IntervalDay)
	require.NoError(t, err)
	require.Len(t, points, 5)

	for i, p := range points {
		assert.Equal(t, start.AddDate(0, 0, i), p.Date)
	}
	assert.Equal(t, 1, points[0].TotalPipelines)
	assert.Equal(t, 0, points[1].TotalPipelines) // empty bucket still present
	assert.Equal(t, 1, points[2].TotalPipelines)
	assert.Equal(t, 0, points[3].TotalPipelines)
	assert.Equal(t, 100.0, points[0].SuccessRate)
	assert.Equal(t, 0.0, points[1].SuccessRate)
}

func TestComputeTrendsPartialFinalBucket(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	// a 10-day window bucketed by week yields two buckets, the second
	// extending past end
	points, err := ComputeTrends(nil, start, start.AddDate(0, 0, 10), IntervalWeek)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, start, points[0].Date)
	assert.Equal(t, start.AddDate(0, 0, 7), points[1].Date)
}

func TestComputeTrendsMonthIsThirtyDays(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	points, err := ComputeTrends(nil, start, start.AddDate(0, 0, 60), IntervalMonth)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, start.AddDate(0, 0, 30), points[1].Date)
}

func TestComputeTrendsUnknownInterval(t *testing.T) {
	_, err := ComputeTrends(nil, time.Now(), time.Now().Add(time.Hour), Interval("quarter"))
	assert.ErrorIs(t, err, entity.ErrInvalid)
}

func TestComputeTrendsEmptyWindow(t *testing.T) {
	now := time.Now()
	points, err := ComputeTrends(nil, now, now, IntervalDay)
	require.NoError(t, err)
	assert.Empty(t, points)
}
