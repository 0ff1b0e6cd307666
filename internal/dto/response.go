package dto

import (
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"finsight/internal/models"
)

// AnalysisType selects an analysis operation in requests.
type AnalysisType string

const (
	AnalysisSpendingPattern  AnalysisType = "spending_pattern"
	AnalysisBudgetHealth     AnalysisType = "budget_health"
	AnalysisSavingsPotential AnalysisType = "savings_potential"
	AnalysisRiskAssessment   AnalysisType = "risk_assessment"
	AnalysisGoalProgress     AnalysisType = "goal_progress"
)

type AnalysisResponse struct {
	AnalysisID   string           `json:"analysisId"`
	Timestamp    string           `json:"timestamp"`
	AnalysisType AnalysisType     `json:"analysisType"`
	Insights     []models.Insight `json:"insights"`
	Summary      string           `json:"summary"`
	Confidence   float64          `json:"confidence"`
}

type AdviceResponse struct {
	AdviceID        string                  `json:"adviceId"`
	Timestamp       string                  `json:"timestamp"`
	AdviceType      models.AdviceType       `json:"adviceType"`
	Recommendations []models.Recommendation `json:"recommendations"`
	EstimatedImpact models.EstimatedImpact  `json:"estimatedImpact"`
	Confidence      float64                 `json:"confidence"`
}

type PredictionResponse struct {
	PredictionID string                      `json:"predictionId"`
	Timestamp    string                      `json:"timestamp"`
	Predictions  []models.CashFlowPrediction `json:"predictions"`
	Metadata     models.PredictionMetadata   `json:"metadata"`
	Confidence   float64                     `json:"confidence"`
}

type RiskResponse struct {
	AssessmentID string                `json:"assessmentId"`
	Timestamp    string                `json:"timestamp"`
	Assessment   models.RiskAssessment `json:"riskAssessment"`
	Insights     []models.Insight      `json:"insights"`
	Confidence   float64               `json:"confidence"`
}

type GoalForecastResponse struct {
	ForecastID string              `json:"forecastId"`
	Timestamp  string              `json:"timestamp"`
	Forecast   models.GoalForecast `json:"forecast"`
	Insights   []models.Insight    `json:"insights"`
	Confidence float64             `json:"confidence"`
}

func NewAnalysisResponse(analysisType AnalysisType, insights []models.Insight, summary string, confidence float64) AnalysisResponse {
	return AnalysisResponse{
		AnalysisID:   shortID("ana"),
		Timestamp:    timestamp(),
		AnalysisType: analysisType,
		Insights:     insights,
		Summary:      summary,
		Confidence:   confidence,
	}
}

func NewAdviceResponse(adviceType models.AdviceType, recommendations []models.Recommendation, impact models.EstimatedImpact, confidence float64) AdviceResponse {
	return AdviceResponse{
		AdviceID:        shortID("adv"),
		Timestamp:       timestamp(),
		AdviceType:      adviceType,
		Recommendations: recommendations,
		EstimatedImpact: impact,
		Confidence:      confidence,
	}
}

func NewPredictionResponse(predictions []models.CashFlowPrediction, metadata models.PredictionMetadata, confidence float64) PredictionResponse {
	return PredictionResponse{
		PredictionID: shortID("prd"),
		Timestamp:    timestamp(),
		Predictions:  predictions,
		Metadata:     metadata,
		Confidence:   confidence,
	}
}

func NewRiskResponse(assessment models.RiskAssessment, insights []models.Insight, confidence float64) RiskResponse {
	return RiskResponse{
		AssessmentID: shortID("rsk"),
		Timestamp:    timestamp(),
		Assessment:   assessment,
		Insights:     insights,
		Confidence:   confidence,
	}
}

func NewGoalForecastResponse(forecast models.GoalForecast, insights []models.Insight, confidence float64) GoalForecastResponse {
	return GoalForecastResponse{
		ForecastID: shortID("gol"),
		Timestamp:  timestamp(),
		Forecast:   forecast,
		Insights:   insights,
		Confidence: confidence,
	}
}

// shortID builds ids like "ana_3f9a2c" from a fresh UUID.
func shortID(prefix string) string {
	id := uuid.New()
	return prefix + "_" + hex.EncodeToString(id[:])[:6]
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
