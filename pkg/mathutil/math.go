// Package mathutil provides small numeric helpers shared by the metric
// calculators.
package mathutil

// Clamp bounds v to the inclusive [low, high] range.
func Clamp(v, low, high float64) float64 {
	if v < low {
		return low
	}

	if v > high {
		return high
	}

	return v
}

// MeanInt returns the unweighted arithmetic mean of the values. The second
// return value is false when the slice is empty; callers must treat that as
// "no average", never as zero.
func MeanInt(values []int) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}

	total := 0
	for _, v := range values {
		total += v
	}

	return float64(total) / float64(len(values)), true
}
