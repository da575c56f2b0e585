package models

// Trend indicates the direction an insight points in
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Importance ranks how much weight an insight carries
type Importance string

const (
	ImportanceLow    Importance = "low"
	ImportanceMedium Importance = "medium"
	ImportanceHigh   Importance = "high"
)

// RiskLevel categorizes the risk attached to a recommendation
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Insight is a single confidence-scored finding about a team
type Insight struct {
	Title      string     `json:"title"`
	Value      string     `json:"value"`
	Trend      Trend      `json:"trend"`
	Confidence float64    `json:"confidence"`
	Importance Importance `json:"importance"`
	Context    string     `json:"context"`
	Benchmark  string     `json:"benchmark,omitempty"`
}

// Recommendation is a conditional, actionable betting suggestion
type Recommendation struct {
	Action       string    `json:"action"`
	Confidence   float64   `json:"confidence"`
	ExpectedROI  float64   `json:"expected_roi"`
	Risk         RiskLevel `json:"risk"`
	Timeframe    string    `json:"timeframe"`
	Conditions   []string  `json:"conditions"`
	StakePercent float64   `json:"stake_percent"`
}
