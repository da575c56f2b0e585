// Package scoring derives bounded confidence and risk figures from
// already-computed statistics. Every function is pure.
package scoring

import (
	"math"

	"github.com/yourusername/betlab/internal/models"
)

// OverallConfidence scores an analysis from sample size and the consistency
// between two reference ROI figures (usually home vs away). The sample term
// maxes out at 20 matches; the consistency term floors at 0. The result is
// clamped to [0, 100].
func OverallConfidence(matches int, roiA, roiB float64) float64 {
	sampleTerm := math.Min(float64(matches)/20, 1) * 40
	consistencyTerm := math.Max(0, 60-math.Abs(roiA-roiB))
	return Clamp(sampleTerm+consistencyTerm, 0, 100)
}

// SampleConfidence is a step function of settled sample size
func SampleConfidence(matches int) float64 {
	switch {
	case matches >= 20:
		return 85
	case matches >= 10:
		return 70
	case matches >= 5:
		return 55
	default:
		return 40
	}
}

// RecommendationConfidence combines ROI magnitude and sample size, each
// term capped at 50.
func RecommendationConfidence(roi float64, sampleSize int) float64 {
	roiTerm := math.Min(math.Abs(roi)/30, 1) * 50
	sampleTerm := math.Min(float64(sampleSize)/15, 1) * 50
	return Clamp(roiTerm+sampleTerm, 0, 100)
}

// RiskFromROIDelta categorizes risk from the absolute ROI gap between venues
func RiskFromROIDelta(delta float64) models.RiskLevel {
	delta = math.Abs(delta)
	switch {
	case delta > 30:
		return models.RiskHigh
	case delta > 15:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// Volatility is the cross-venue ROI spread on a divided-by-ten scale
func Volatility(roiHome, roiAway float64) float64 {
	return math.Abs(roiHome-roiAway) / 10
}

// EstimatedMaxDrawdown is a presentation heuristic derived from volatility,
// capped at 35. It is distinct from the empirically measured backtest
// drawdown.
func EstimatedMaxDrawdown(volatility float64) float64 {
	return math.Min(volatility*8, 35)
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
