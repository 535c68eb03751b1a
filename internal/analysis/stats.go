package analysis

import (
	"ftm-analyzer/internal/models"
	"math"
)

// describe reduces values to count/mean/min/max and the sample standard
// deviation (n-1). A single value has a deviation of 0; no values yields an
// absent summary.
func describe(values []float64) models.Summary {
	if len(values) == 0 {
		return models.Summary{}
	}

	sum := 0.0
	minV := values[0]
	maxV := values[0]
	for _, v := range values {
		sum += v
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	mean := sum / float64(len(values))

	std := 0.0
	if len(values) > 1 {
		varianceSum := 0.0
		for _, v := range values {
			diff := v - mean
			varianceSum += diff * diff
		}
		std = math.Sqrt(varianceSum / float64(len(values)-1))
	}

	s := models.Summary{
		Count: len(values),
		Mean:  mean,
		Min:   minV,
		Max:   maxV,
		Std:   std,
	}
	if !finite(s.Mean) || !finite(s.Min) || !finite(s.Max) || !finite(s.Std) {
		return models.Summary{}
	}
	return s
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
