package models

import "time"

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

type CashFlowPrediction struct {
	Date             time.Time `json:"date"`
	PredictedBalance float64   `json:"predicted_balance"`
	Confidence       float64   `json:"confidence"`
	RiskLevel        RiskLevel `json:"risk_level"`
	Factors          []string  `json:"factors"`
}

// PredictionMetadata describes the model run behind a cash-flow forecast.
// Error is set instead of the other fields when the forecast degraded.
type PredictionMetadata struct {
	ModelAccuracy       float64 `json:"model_accuracy,omitempty"`
	PredictionHorizon   int     `json:"prediction_horizon,omitempty"`
	DataPointsUsed      int     `json:"data_points_used,omitempty"`
	LastTransactionDate string  `json:"last_transaction_date,omitempty"`
	Error               string  `json:"error,omitempty"`
}

type MonthlyProjection struct {
	Month          int     `json:"month"`
	Balance        float64 `json:"balance"`
	Contributions  float64 `json:"contributions"`
	InterestEarned float64 `json:"interest_earned"`
}

// GoalForecast is the result of a compound-interest savings goal projection.
// Error is set (and the numeric fields zeroed) on validation failure.
type GoalForecast struct {
	MonthsToGoal       float64             `json:"months_to_goal"`
	YearsToGoal        float64             `json:"years_to_goal"`
	TotalContributions float64             `json:"total_contributions"`
	TotalInterest      float64             `json:"total_interest"`
	MonthlyProjections []MonthlyProjection `json:"monthly_projections"`
	FeasibilityScore   float64             `json:"feasibility_score"`
	Error              string              `json:"error,omitempty"`
}
