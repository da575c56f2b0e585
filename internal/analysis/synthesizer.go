package analysis

import (
	"fmt"
	"sort"

	"github.com/yourusername/betlab/internal/models"
	"github.com/yourusername/betlab/internal/scoring"
)

// standard risk-management prompts returned with every report
var mitigations = []string{
	"Reduce stake size until the edge is confirmed",
	"Re-evaluate after 5 more matches",
	"Account for lineup and injury news before each bet",
	"Monitor recent form changes",
}

// Synthesize turns a TeamAnalysis into ranked findings, a primary
// recommendation, actionable recommendations and risk factors. All
// percentages in the text are rendered to one decimal; the numeric fields
// keep full precision.
func Synthesize(analysis *models.TeamAnalysis) *InsightReport {
	if analysis == nil {
		analysis = &models.TeamAnalysis{}
	}

	roiHome := analysis.Betting.ROIHome
	roiAway := analysis.Betting.ROIAway
	volatility := scoring.Volatility(roiHome, roiAway)

	report := &InsightReport{
		Analysis:              analysis,
		KeyFindings:           keyFindings(analysis),
		PrimaryRecommendation: primaryRecommendation(analysis),
		Insights:              rankedInsights(analysis),
		Recommendations:       actionableRecommendations(analysis),
		RiskFactors:           riskFactors(analysis),
		Mitigations:           mitigations,
		Volatility:            volatility,
		EstimatedMaxDrawdown:  scoring.EstimatedMaxDrawdown(volatility),
		OverallConfidence:     scoring.OverallConfidence(analysis.MatchesPlayed, roiHome, roiAway),
	}
	return report
}

// keyFindings evaluates the finding rules in fixed order, at most three
func keyFindings(a *models.TeamAnalysis) []string {
	findings := make([]string, 0, 3)
	roiHome, roiAway := a.Betting.ROIHome, a.Betting.ROIAway

	if delta := roiHome - roiAway; abs(delta) > 15 {
		better, betterROI, worseROI := "home", roiHome, roiAway
		if delta < 0 {
			better, betterROI, worseROI = "away", roiAway, roiHome
		}
		findings = append(findings, fmt.Sprintf(
			"Strong %s bias: %.1f%% ROI %s vs %.1f%% at the other venue",
			better, betterROI, better, worseROI))
	}

	switch {
	case a.Betting.Over25Rate > 65:
		findings = append(findings, fmt.Sprintf(
			"High-scoring profile: over 2.5 goals in %.1f%% of matches", a.Betting.Over25Rate))
	case a.Betting.Over25Rate < 40 && a.MatchesPlayed > 0:
		findings = append(findings, fmt.Sprintf(
			"Low-scoring profile: over 2.5 goals in only %.1f%% of matches", a.Betting.Over25Rate))
	}

	if a.Betting.ROIAsUnderdog-a.Betting.ROIAsFavorite > 20 {
		findings = append(findings, fmt.Sprintf(
			"Underdog value: %.1f%% ROI as underdog vs %.1f%% as favorite",
			a.Betting.ROIAsUnderdog, a.Betting.ROIAsFavorite))
	}

	if len(findings) > 3 {
		findings = findings[:3]
	}
	return findings
}

// primaryRecommendation applies the selection rules in order; first match wins
func primaryRecommendation(a *models.TeamAnalysis) string {
	roiHome, roiAway := a.Betting.ROIHome, a.Betting.ROIAway

	switch {
	case roiHome > 25 && roiHome-roiAway > 15:
		return fmt.Sprintf("Focus on %s home matches: %.1f%% ROI backing them at home", a.Team, roiHome)
	case a.Betting.ROIAsUnderdog > 30:
		return fmt.Sprintf("Target %s as an underdog: %.1f%% ROI when unfancied", a.Team, a.Betting.ROIAsUnderdog)
	case max3(roiHome, roiAway, a.Betting.ROIAsUnderdog) < 10:
		return fmt.Sprintf("Avoid betting on %s: no venue shows a meaningful edge", a.Team)
	default:
		return fmt.Sprintf("Selective betting on %s: back them only when match context is favorable", a.Team)
	}
}

// rankedInsights builds the insight list and ranks it by importance, then
// confidence. Per-insight confidence is the sample-size step function.
func rankedInsights(a *models.TeamAnalysis) []models.Insight {
	confidence := scoring.SampleConfidence(a.MatchesPlayed)
	insights := []models.Insight{
		{
			Title:      "Home betting ROI",
			Value:      fmt.Sprintf("%.1f%%", a.Betting.ROIHome),
			Trend:      trendFor(a.Betting.ROIHome),
			Confidence: confidence,
			Importance: importanceFor(a.Betting.ROIHome),
			Context:    fmt.Sprintf("Backing %s to win across %d home matches", a.Team, a.Home.Played),
		},
		{
			Title:      "Away betting ROI",
			Value:      fmt.Sprintf("%.1f%%", a.Betting.ROIAway),
			Trend:      trendFor(a.Betting.ROIAway),
			Confidence: confidence,
			Importance: importanceFor(a.Betting.ROIAway),
			Context:    fmt.Sprintf("Backing %s to win across %d away matches", a.Team, a.Away.Played),
		},
		{
			Title:      "Over 2.5 goals rate",
			Value:      fmt.Sprintf("%.1f%%", a.Betting.Over25Rate),
			Trend:      trendFor(a.Betting.Over25Rate - 50),
			Confidence: confidence,
			Importance: importanceFor(a.Betting.Over25Rate - 50),
			Context:    fmt.Sprintf("%d of %d matches finished with three or more goals", overCount(a), a.MatchesPlayed),
			Benchmark:  "League average is close to 50%",
		},
	}

	sort.SliceStable(insights, func(i, j int) bool {
		if insights[i].Importance != insights[j].Importance {
			return importanceRank(insights[i].Importance) > importanceRank(insights[j].Importance)
		}
		return insights[i].Confidence > insights[j].Confidence
	})
	return insights
}

// actionableRecommendations appends each recommendation whose condition
// holds, preserving evaluation order.
func actionableRecommendations(a *models.TeamAnalysis) []models.Recommendation {
	recs := []models.Recommendation{}
	roiHome := a.Betting.ROIHome

	if roiHome > 15 {
		risk := models.RiskLow
		stake := 2.0
		if roiHome > 30 {
			risk = models.RiskMedium
			stake = 3.0
		}
		recs = append(recs, models.Recommendation{
			Action:      fmt.Sprintf("Back %s at home", a.Team),
			Confidence:  scoring.RecommendationConfidence(roiHome, a.Home.Played),
			ExpectedROI: roiHome,
			Risk:        risk,
			Timeframe:   "Next 5 home matches",
			Conditions: []string{
				"Full-strength starting lineup expected",
				"No significant odds drift before kickoff",
			},
			StakePercent: stake,
		})
	}

	if deviation := a.Betting.Over25Rate - 50; abs(deviation) > 15 {
		direction := "over"
		if deviation < 0 {
			direction = "under"
		}
		recs = append(recs, models.Recommendation{
			Action:      fmt.Sprintf("Bet %s 2.5 goals in %s matches", direction, a.Team),
			Confidence:  70,
			ExpectedROI: abs(deviation) * 0.8,
			Risk:        models.RiskMedium,
			Timeframe:   "Next 5 matches",
			Conditions: []string{
				fmt.Sprintf("Goal-market rate stays %s the league norm", direction),
			},
			StakePercent: 1.5,
		})
	}

	return recs
}

// riskFactors includes every applicable factor
func riskFactors(a *models.TeamAnalysis) []string {
	factors := []string{}
	if a.MatchesPlayed < 10 {
		factors = append(factors, fmt.Sprintf(
			"Limited sample of %d matches, results may not be reliable", a.MatchesPlayed))
	}
	if delta := abs(a.Betting.ROIHome - a.Betting.ROIAway); delta > 25 {
		factors = append(factors, fmt.Sprintf(
			"High variance between home and away performance (%.1f%% ROI gap)", delta))
	}
	if a.Betting.ROIHome > 40 || a.Betting.ROIAway > 40 {
		factors = append(factors, "Exceptionally high ROI may not be sustainable")
	}
	return factors
}

func trendFor(v float64) models.Trend {
	switch {
	case v > 5:
		return models.TrendUp
	case v < -5:
		return models.TrendDown
	default:
		return models.TrendStable
	}
}

func importanceFor(v float64) models.Importance {
	switch {
	case abs(v) > 20:
		return models.ImportanceHigh
	case abs(v) > 10:
		return models.ImportanceMedium
	default:
		return models.ImportanceLow
	}
}

func importanceRank(i models.Importance) int {
	switch i {
	case models.ImportanceHigh:
		return 2
	case models.ImportanceMedium:
		return 1
	default:
		return 0
	}
}

func overCount(a *models.TeamAnalysis) int {
	if a.MatchesPlayed == 0 {
		return 0
	}
	return int(a.Betting.Over25Rate*float64(a.MatchesPlayed)/100 + 0.5)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func max3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
