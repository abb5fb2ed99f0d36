package benford

import "sort"

// Published mean absolute deviation boundaries for first-digit tests.
const (
	DefaultCloseConformityUpperBound      = 0.006
	DefaultAcceptableConformityUpperBound = 0.012
	DefaultMarginalConformityUpperBound   = 0.015
	DefaultMinimumRecommendedSampleSize   = 500
)

// Thresholds configures conformity classification. Each upper bound is exclusive.
type Thresholds struct {
	CloseConformityUpperBound      float64
	AcceptableConformityUpperBound float64
	MarginalConformityUpperBound   float64
	MinimumRecommendedSampleSize   int
}

// DefaultThresholds returns the published first-digit boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CloseConformityUpperBound:      DefaultCloseConformityUpperBound,
		AcceptableConformityUpperBound: DefaultAcceptableConformityUpperBound,
		MarginalConformityUpperBound:   DefaultMarginalConformityUpperBound,
		MinimumRecommendedSampleSize:   DefaultMinimumRecommendedSampleSize,
	}
}

func (thresholds Thresholds) sanitize() Thresholds {
	bounds := []float64{
		thresholds.CloseConformityUpperBound,
		thresholds.AcceptableConformityUpperBound,
		thresholds.MarginalConformityUpperBound,
	}
	sort.Float64s(bounds)

	sanitized := Thresholds{
		CloseConformityUpperBound:      bounds[0],
		AcceptableConformityUpperBound: bounds[1],
		MarginalConformityUpperBound:   bounds[2],
		MinimumRecommendedSampleSize:   thresholds.MinimumRecommendedSampleSize,
	}
	if sanitized.MinimumRecommendedSampleSize < 0 {
		sanitized.MinimumRecommendedSampleSize = 0
	}
	return sanitized
}
