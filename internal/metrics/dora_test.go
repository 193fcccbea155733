package metrics

import (
	"testing"
	"time"

	"github.com/pipewatch/pipewatch/internal/entity"
	"github.com/stretchr/testify/assert"
)

var windowStart = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func run(status entity.PipelineStatus, finished time.Time, failedDeploy bool) *entity.PipelineRun {
	f := finished
	return &entity.PipelineRun{
		Status:             status,
		FinishedAt:         &f,
		IsFailedDeployment: failedDeploy,
		CreatedAt:          finished,
	}
}

func TestComputeDORAEmptyWindow(t *testing.T) {
	m := ComputeDORA(nil, windowStart, windowStart.AddDate(0, 0, 10))
	assert.Equal(t, DORAMetrics{}, m)
}

func TestDeploymentFrequencyTenDayWindow(t *testing.T) {
	// Scenario: 10 runs over a 10-day window, 9 success + 1 failed.
	var runs []*entity.PipelineRun
	for i := 0; i < 9; i++ {
		runs = append(runs, run(entity.StatusSuccess, windowStart.AddDate(0, 0, i), false))
	}
	runs = append(runs, run(entity.StatusFailed, windowStart.AddDate(0, 0, 9), true))

	m := ComputeDORA(runs, windowStart, windowStart.AddDate(0, 0, 10))
	assert.Equal(t, 0.9, m.DeploymentFrequency)
	assert.Equal(t, 10.0, m.ChangeFailureRate)
}

func TestDeploymentFrequencyZeroWindow(t *testing.T) {
	runs := []*entity.PipelineRun{run(entity.StatusSuccess, windowStart, false)}
	assert.Equal(t, 0.0, ComputeDORA(runs, windowStart, windowStart).DeploymentFrequency)
	assert.Equal(t, 0.0, ComputeDORA(runs, windowStart, windowStart.AddDate(0, 0, -1)).DeploymentFrequency)
}

func TestChangeFailureRateOrderInvariant(t *testing.T) {
	a := run(entity.StatusFailed, windowStart.Add(1*time.Hour), true)
	b := run(entity.StatusSuccess, windowStart.Add(2*time.Hour), false)
	c := run(entity.StatusSuccess, windowStart.Add(3*time.Hour), false)
	end := windowStart.AddDate(0, 0, 1)

	forward := ComputeDORA([]*entity.PipelineRun{a, b, c}, windowStart, end)
	backward := ComputeDORA([]*entity.PipelineRun{c, b, a}, windowStart, end)
	assert.Equal(t, forward.ChangeFailureRate, backward.ChangeFailureRate)
	assert.Equal(t, 33.33, forward.ChangeFailureRate)
}

func TestChangeFailureRateCountsFlagOrStatus(t *testing.T) {
	runs := []*entity.PipelineRun{
		run(entity.StatusFailed, windowStart.Add(time.Hour), false),
		// nominally successful rollback, still a failed deployment
		run(entity.StatusSuccess, windowStart.Add(2*time.Hour), true),
		run(entity.StatusSuccess, windowStart.Add(3*time.Hour), false),
		run(entity.StatusSuccess, windowStart.Add(4*time.Hour), false),
	}
	m := ComputeDORA(runs, windowStart, windowStart.AddDate(0, 0, 1))
	assert.Equal(t, 50.0, m.ChangeFailureRate)
}

func TestMTTRPairsEachFailureWithNextSuccess(t *testing.T) {
	// fail@t0, success@t1, fail@t2, success@t3 → mean(t1−t0, t3−t2).
	t0 := windowStart
	runs := []*entity.PipelineRun{
		run(entity.StatusFailed, t0, true),
		run(entity.StatusSuccess, t0.Add(2*time.Hour), false),
		run(entity.StatusFailed, t0.Add(5*time.Hour), true),
		run(entity.StatusSuccess, t0.Add(9*time.Hour), false),
	}
	m := ComputeDORA(runs, windowStart, windowStart.AddDate(0, 0, 1))
	assert.Equal(t, 3.0, m.MeanTimeToRestore) // mean(2h, 4h)
}

func TestMTTRSkipsFailedDeploymentSuccesses(t *testing.T) {
	// A success that is itself flagged as a failed deployment does not
	// restore service.
	t0 := windowStart
	runs := []*entity.PipelineRun{
		run(entity.StatusFailed, t0, true),
		run(entity.StatusSuccess, t0.Add(1*time.Hour), true),
		run(entity.StatusSuccess, t0.Add(4*time.Hour), false),
	}
	m := ComputeDORA(runs, windowStart, windowStart.AddDate(0, 0, 1))
	// first failure restores at +4h, the flagged success restores at +4h too
	assert.Equal(t, 3.5, m.MeanTimeToRestore)
}

func TestMTTRNoRecoveryFound(t *testing.T) {
	runs := []*entity.PipelineRun{
		run(entity.StatusFailed, windowStart, true),
		run(entity.StatusFailed, windowStart.Add(time.Hour), true),
	}
	m := ComputeDORA(runs, windowStart, windowStart.AddDate(0, 0, 1))
	assert.Equal(t, 0.0, m.MeanTimeToRestore)
}

func TestLeadTimeOnlySuccessfulRunsWithLeadTime(t *testing.T) {
	lead := func(s float64) *float64 { return &s }
	r1 := run(entity.StatusSuccess, windowStart.Add(time.Hour), false)
	r1.LeadTime = lead(7200) // 2h
	r2 := run(entity.StatusSuccess, windowStart.Add(2*time.Hour), false)
	r2.LeadTime = lead(3600) // 1h
	r3 := run(entity.StatusFailed, windowStart.Add(3*time.Hour), true)
	r3.LeadTime = lead(36000) // excluded, not a success
	r4 := run(entity.StatusSuccess, windowStart.Add(4*time.Hour), false) // excluded, no lead time

	m := ComputeDORA([]*entity.PipelineRun{r1, r2, r3, r4}, windowStart, windowStart.AddDate(0, 0, 1))
	assert.Equal(t, 1.5, m.LeadTimeForChanges)
}
