package models

// RiskAssessment combines liquidity, spending, income and debt sub-scores
// into a normalized overall score.
type RiskAssessment struct {
	OverallRiskScore     float64  `json:"overall_risk_score"`
	RiskFactors          []string `json:"risk_factors"`
	MitigationStrategies []string `json:"mitigation_strategies"`
	ConfidenceLevel      float64  `json:"confidence_level"`
}

// UserProfile carries the optional profile data the risk assessor consumes.
// A nil DebtToIncomeRatio falls back to the 0.3 default.
type UserProfile struct {
	DebtToIncomeRatio *float64 `json:"debt_to_income_ratio,omitempty"`
}
