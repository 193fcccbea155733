package metrics

import (
	"fmt"
	"time"

	"github.com/pipewatch/pipewatch/internal/entity"
)

type Interval string

const (
	IntervalDay   Interval = "day"
	IntervalWeek  Interval = "week"
	IntervalMonth Interval = "month"
)

// Width returns the fixed bucket width. Months are a 30-day approximation,
// not calendar-aware.
func (i Interval) Width() (time.Duration, error) {
	switch i {
	case IntervalDay:
		return 24 * time.Hour, nil
	case IntervalWeek:
		return 7 * 24 * time.Hour, nil
	case IntervalMonth:
		return 30 * 24 * time.Hour, nil
	}
	return 0, fmt.Errorf("%w: interval %q", entity.ErrInvalid, i)
}

// TrendPoint is one bucket on the time axis.
type TrendPoint struct {
	Date time.Time `json:"date"`
	CICDMetrics
	DORAMetrics
}

// ComputeTrends buckets runs into fixed-width intervals covering [start, end)
// with no gaps. Empty buckets appear with zero-valued metrics so the axis
// stays contiguous. A run belongs to a bucket by its creation time.
func ComputeTrends(runs []*entity.PipelineRun, start, end time.Time, interval Interval) ([]TrendPoint, error) {
	width, err := interval.Width()
	if err != nil {
		return nil, err
	}

	points := []TrendPoint{}
	for bucketStart := start; bucketStart.Before(end); bucketStart = bucketStart.Add(width) {
		bucketEnd := bucketStart.Add(width)
		var bucket []*entity.PipelineRun
		for _, r := range runs {
			if !r.CreatedAt.Before(bucketStart) && r.CreatedAt.Before(bucketEnd) {
				bucket = append(bucket, r)
			}
		}
		points = append(points, TrendPoint{
			Date:        bucketStart,
			CICDMetrics: ComputeCICD(bucket),
			DORAMetrics: ComputeDORA(bucket, bucketStart, bucketEnd),
		})
	}
	return points, nil
}
