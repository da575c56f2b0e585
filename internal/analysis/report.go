// Package analysis builds team performance splits and synthesizes them
// into confidence-scored findings and recommendations.
package analysis

import (
	"github.com/yourusername/betlab/internal/models"
)

// InsightReport is the synthesized output for one team, consumed by an
// external renderer. The engine never formats tables or charts itself.
type InsightReport struct {
	Analysis              *models.TeamAnalysis    `json:"analysis"`
	KeyFindings           []string                `json:"key_findings"`
	PrimaryRecommendation string                  `json:"primary_recommendation"`
	Insights              []models.Insight        `json:"insights"`
	Recommendations       []models.Recommendation `json:"recommendations"`
	RiskFactors           []string                `json:"risk_factors"`
	Mitigations           []string                `json:"mitigations"`
	Volatility            float64                 `json:"volatility"`
	EstimatedMaxDrawdown  float64                 `json:"estimated_max_drawdown"`
	OverallConfidence     float64                 `json:"overall_confidence"`
}
