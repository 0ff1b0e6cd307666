package dto

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finsight/internal/models"
)

var idPattern = regexp.MustCompile(`^[a-z]{3}_[0-9a-f]{6}$`)

func TestNewAnalysisResponse(t *testing.T) {
	insights := []models.Insight{{
		Type:     models.InsightAnomaly,
		Severity: models.SeverityAlert,
		Category: "dining",
		Message:  "Unusual spending detected",
	}}

	resp := NewAnalysisResponse(AnalysisSpendingPattern, insights, "summary", 0.9)

	assert.Regexp(t, idPattern, resp.AnalysisID)
	assert.Equal(t, AnalysisSpendingPattern, resp.AnalysisType)
	assert.Equal(t, insights, resp.Insights)

	_, err := time.Parse(time.RFC3339, resp.Timestamp)
	assert.NoError(t, err)
}

func TestResponseIDPrefixes(t *testing.T) {
	assert.Regexp(t, `^adv_`, NewAdviceResponse(models.AdviceDebtManagement, nil, models.EstimatedImpact{}, 0.8).AdviceID)
	assert.Regexp(t, `^prd_`, NewPredictionResponse(nil, models.PredictionMetadata{}, 0.8).PredictionID)
	assert.Regexp(t, `^rsk_`, NewRiskResponse(models.RiskAssessment{}, nil, 0.8).AssessmentID)
	assert.Regexp(t, `^gol_`, NewGoalForecastResponse(models.GoalForecast{}, nil, 0.8).ForecastID)
}

func TestAdviceResponse_ImpactOmitsUnsetFields(t *testing.T) {
	impact := models.EstimatedImpact{
		InterestSavings:        models.Float(1200),
		PayoffTimeReduction:    "6 months",
		CreditScoreImprovement: "50-100 points",
	}
	resp := NewAdviceResponse(models.AdviceDebtManagement, nil, impact, 0.82)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	impactJSON, ok := decoded["estimatedImpact"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, impactJSON, "interestSavings")
	assert.NotContains(t, impactJSON, "monthlySavingsIncrease")
	assert.NotContains(t, impactJSON, "projectedNetWorth10Years")
}
