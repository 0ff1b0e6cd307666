package models

type InsightType string

const (
	InsightOverspending  InsightType = "overspending"
	InsightUnderspending InsightType = "underspending"
	InsightTrend         InsightType = "trend"
	InsightAnomaly       InsightType = "anomaly"
	InsightOpportunity   InsightType = "opportunity"
	InsightRisk          InsightType = "risk"
)

// InsightSeverity levels, ordered by escalation.
type InsightSeverity string

const (
	SeverityInfo     InsightSeverity = "info"
	SeverityWarning  InsightSeverity = "warning"
	SeverityAlert    InsightSeverity = "alert"
	SeverityCritical InsightSeverity = "critical"
)

type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
	TrendVolatile   TrendDirection = "volatile"
)

// Insight is a generated observation about spending behavior. Insights are
// produced within a single analysis call and never mutated afterwards.
type Insight struct {
	Type             InsightType     `json:"type"`
	Severity         InsightSeverity `json:"severity"`
	Category         string          `json:"category"`
	Message          string          `json:"message"`
	CurrentAmount    *float64        `json:"current_amount,omitempty"`
	AverageAmount    *float64        `json:"average_amount,omitempty"`
	TargetAmount     *float64        `json:"target_amount,omitempty"`
	PercentageChange *float64        `json:"percentage_change,omitempty"`
	Trend            TrendDirection  `json:"trend,omitempty"`
	Metadata         map[string]any  `json:"metadata,omitempty"`
}

// Float returns a pointer to v, for the optional numeric insight fields.
func Float(v float64) *float64 {
	return &v
}
