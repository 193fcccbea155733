package metrics

import "math"

// Round2 rounds to 2 decimal places. Every percentage and average the engine
// reports goes through it.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Average returns the rounded mean of values, 0 for an empty slice.
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return Round2(sum / float64(len(values)))
}

// Percentage returns part/total as a rounded percentage, 0 when total is 0.
func Percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return Round2(float64(part) / float64(total) * 100)
}
