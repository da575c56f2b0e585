package analysis

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/betlab/internal/models"
)

func analysisWith(roiHome, roiAway float64, matches int) *models.TeamAnalysis {
	return &models.TeamAnalysis{
		Team:          "Arsenal",
		MatchesPlayed: matches,
		Home:          models.VenueRecord{Played: matches / 2},
		Away:          models.VenueRecord{Played: matches - matches/2},
		Betting: models.BettingStats{
			ROIHome:    roiHome,
			ROIAway:    roiAway,
			Over25Rate: 50,
		},
	}
}

func TestSynthesizeHomeAdvantageScenario(t *testing.T) {
	// roi_home 28, roi_away 4: delta 24 triggers the home finding and the
	// home-focus primary recommendation.
	report := Synthesize(analysisWith(28, 4, 20))

	require.NotEmpty(t, report.KeyFindings)
	assert.Contains(t, report.KeyFindings[0], "home")
	assert.Contains(t, report.PrimaryRecommendation, "home matches")
}

func TestSynthesizeAvoidanceRecommendation(t *testing.T) {
	report := Synthesize(analysisWith(5, 3, 20))
	assert.Contains(t, report.PrimaryRecommendation, "Avoid")
}

func TestSynthesizeFallbackRecommendation(t *testing.T) {
	// roi_home 12 clears the avoidance threshold but not the home-focus rule
	report := Synthesize(analysisWith(12, 8, 20))
	assert.Contains(t, report.PrimaryRecommendation, "Selective")
}

func TestSynthesizeSmallSampleConfidence(t *testing.T) {
	// 3 matches: per-insight confidence is 40 regardless of ROI magnitude
	report := Synthesize(analysisWith(80, -40, 3))
	require.NotEmpty(t, report.Insights)
	for _, insight := range report.Insights {
		assert.Equal(t, 40.0, insight.Confidence)
	}
}

func TestSynthesizeConfidencesBounded(t *testing.T) {
	reports := []*InsightReport{
		Synthesize(analysisWith(0, 0, 0)),
		Synthesize(analysisWith(200, -200, 50)),
		Synthesize(analysisWith(45, 44, 38)),
	}
	for _, report := range reports {
		assert.GreaterOrEqual(t, report.OverallConfidence, 0.0)
		assert.LessOrEqual(t, report.OverallConfidence, 100.0)
		for _, insight := range report.Insights {
			assert.GreaterOrEqual(t, insight.Confidence, 0.0)
			assert.LessOrEqual(t, insight.Confidence, 100.0)
		}
		for _, rec := range report.Recommendations {
			assert.GreaterOrEqual(t, rec.Confidence, 0.0)
			assert.LessOrEqual(t, rec.Confidence, 100.0)
		}
	}
}

func TestSynthesizeHomeRecommendationTiers(t *testing.T) {
	moderate := Synthesize(analysisWith(20, 10, 20))
	require.Len(t, moderate.Recommendations, 1)
	assert.Equal(t, models.RiskLow, moderate.Recommendations[0].Risk)
	assert.Equal(t, 2.0, moderate.Recommendations[0].StakePercent)

	strong := Synthesize(analysisWith(35, 10, 20))
	require.NotEmpty(t, strong.Recommendations)
	assert.Equal(t, models.RiskMedium, strong.Recommendations[0].Risk)
	assert.Equal(t, 3.0, strong.Recommendations[0].StakePercent)
}

func TestSynthesizeGoalMarketRecommendation(t *testing.T) {
	a := analysisWith(0, 0, 20)
	a.Betting.Over25Rate = 70

	report := Synthesize(a)
	require.Len(t, report.Recommendations, 1)
	rec := report.Recommendations[0]
	assert.True(t, strings.Contains(rec.Action, "over"))
	assert.Equal(t, 70.0, rec.Confidence)
	assert.InDelta(t, 16.0, rec.ExpectedROI, 1e-9) // |70-50| * 0.8
	assert.Equal(t, models.RiskMedium, rec.Risk)
	assert.Equal(t, 1.5, rec.StakePercent)
}

func TestSynthesizeRiskFactors(t *testing.T) {
	a := analysisWith(50, 10, 6)

	report := Synthesize(a)
	require.Len(t, report.RiskFactors, 3)
	assert.Contains(t, report.RiskFactors[0], "Limited sample")
	assert.Contains(t, report.RiskFactors[1], "variance")
	assert.Contains(t, report.RiskFactors[2], "sustainable")
	assert.NotEmpty(t, report.Mitigations)
}

func TestSynthesizeVolatilityAndDrawdown(t *testing.T) {
	report := Synthesize(analysisWith(28, 4, 20))
	assert.InDelta(t, 2.4, report.Volatility, 1e-9)
	assert.InDelta(t, 19.2, report.EstimatedMaxDrawdown, 1e-9)
}

func TestSynthesizeNilAnalysis(t *testing.T) {
	report := Synthesize(nil)
	require.NotNil(t, report)
	assert.Empty(t, report.KeyFindings)
	assert.NotEmpty(t, report.Mitigations)
}

func TestCachedAnalyzerReturnsSameReport(t *testing.T) {
	cached := NewCachedAnalyzer(NewAnalyzer(nil), time.Minute)
	matches := []*models.Match{
		buildMatch("2024-01-06", "Arsenal", "Chelsea", 2, 0, 1.80, 4.50),
	}

	first := cached.Report("Arsenal", "2023/24", matches)
	second := cached.Report("Arsenal", "2023/24", matches)
	assert.Same(t, first, second)

	cached.Invalidate("Arsenal")
	third := cached.Report("Arsenal", "2023/24", matches)
	assert.NotSame(t, first, third)
}
