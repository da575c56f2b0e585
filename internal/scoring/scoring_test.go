package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/betlab/internal/models"
)

func TestOverallConfidenceBounds(t *testing.T) {
	cases := []struct {
		matches    int
		roiA, roiB float64
	}{
		{0, 0, 0},
		{5, 10, -50},
		{20, 100, -100},
		{1000, 0, 0},
		{38, 28, 4},
	}
	for _, tc := range cases {
		got := OverallConfidence(tc.matches, tc.roiA, tc.roiB)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 100.0)
	}
}

func TestOverallConfidenceFullSample(t *testing.T) {
	// 20+ matches give the full 40-point sample term
	got := OverallConfidence(20, 10, 10)
	assert.InDelta(t, 100.0, got, 1e-9)
}

func TestSampleConfidenceSteps(t *testing.T) {
	assert.Equal(t, 85.0, SampleConfidence(25))
	assert.Equal(t, 85.0, SampleConfidence(20))
	assert.Equal(t, 70.0, SampleConfidence(12))
	assert.Equal(t, 55.0, SampleConfidence(5))
	assert.Equal(t, 40.0, SampleConfidence(3))
	assert.Equal(t, 40.0, SampleConfidence(0))
}

func TestRecommendationConfidence(t *testing.T) {
	// Both terms capped at 50
	assert.Equal(t, 100.0, RecommendationConfidence(90, 30))
	assert.Equal(t, 0.0, RecommendationConfidence(0, 0))

	got := RecommendationConfidence(15, 15)
	assert.InDelta(t, 25.0+50.0, got, 1e-9)
}

func TestRiskFromROIDelta(t *testing.T) {
	assert.Equal(t, models.RiskHigh, RiskFromROIDelta(31))
	assert.Equal(t, models.RiskMedium, RiskFromROIDelta(20))
	assert.Equal(t, models.RiskLow, RiskFromROIDelta(15))
	assert.Equal(t, models.RiskHigh, RiskFromROIDelta(-45))
}

func TestVolatilityAndEstimatedDrawdown(t *testing.T) {
	vol := Volatility(28, 4)
	assert.InDelta(t, 2.4, vol, 1e-9)
	assert.InDelta(t, 19.2, EstimatedMaxDrawdown(vol), 1e-9)

	// Cap at 35
	assert.Equal(t, 35.0, EstimatedMaxDrawdown(10))
}
