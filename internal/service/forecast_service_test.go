package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"finsight/internal/models"
	"finsight/pkg/config"
)

func newTestForecaster() *ForecastService {
	return NewForecastService(config.DefaultEngine(), nil, zap.NewNop())
}

// monthlyHistory builds months of expense history with count transactions
// per month, each month's amounts scaled by the month index.
func monthlyHistory(months, count int, base, step float64) []models.Transaction {
	var txns []models.Transaction
	for m := 0; m < months; m++ {
		for c := 0; c < count; c++ {
			txns = append(txns, models.Transaction{
				Type:     models.TypeExpense,
				Category: "groceries",
				Amount:   base + step*float64(m),
				Currency: "USD",
				Date:     time.Date(2025, time.Month(1+m), 2+c*3, 0, 0, 0, 0, time.UTC),
			})
		}
	}
	return txns
}

func TestPredictCashFlow_InsufficientHistory(t *testing.T) {
	forecaster := newTestForecaster()

	predictions, metadata, confidence := forecaster.PredictCashFlow(monthlyHistory(3, 3, 100, 0), 6)

	assert.Empty(t, predictions)
	assert.NotEmpty(t, metadata.Error)
	assert.Equal(t, 0.3, confidence)
}

func TestPredictCashFlow_TooFewMonths(t *testing.T) {
	forecaster := newTestForecaster()

	// 12 transactions but only 2 monthly buckets: the model cannot train.
	predictions, metadata, confidence := forecaster.PredictCashFlow(monthlyHistory(2, 6, 100, 0), 6)

	assert.Empty(t, predictions)
	assert.NotEmpty(t, metadata.Error)
	assert.Equal(t, 0.1, confidence)
}

func TestPredictCashFlow_ProjectsRequestedHorizon(t *testing.T) {
	forecaster := newTestForecaster()

	txns := monthlyHistory(6, 4, 100, 10)
	predictions, metadata, confidence := forecaster.PredictCashFlow(txns, 4)

	require.Len(t, predictions, 4)
	assert.Empty(t, metadata.Error)
	assert.Equal(t, 4, metadata.PredictionHorizon)
	assert.Equal(t, 6, metadata.DataPointsUsed)
	assert.Equal(t, "2025-06-11", metadata.LastTransactionDate)
	assert.InDelta(t, 0.5+24.0/200, confidence, 1e-9)

	for i, prediction := range predictions {
		assert.Equal(t, 0.75, prediction.Confidence)
		assert.NotEmpty(t, prediction.Factors)
		assert.Contains(t, []models.RiskLevel{
			models.RiskLow, models.RiskMedium, models.RiskHigh, models.RiskCritical,
		}, prediction.RiskLevel)
		if i > 0 {
			assert.True(t, prediction.Date.After(predictions[i-1].Date))
		}
	}
}

func TestPredictCashFlow_DefaultHorizon(t *testing.T) {
	forecaster := newTestForecaster()

	predictions, _, _ := forecaster.PredictCashFlow(monthlyHistory(6, 4, 100, 10), 0)
	assert.Len(t, predictions, config.DefaultEngine().DefaultMonthsAhead)
}

func TestBuildMonthlyBuckets(t *testing.T) {
	txns := []models.Transaction{
		{Type: models.TypeExpense, Amount: 50, Date: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)},
		{Type: models.TypeIncome, Amount: 100, Date: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)},
		{Type: models.TypeExpense, Amount: 30, Date: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)},
	}

	buckets := buildMonthlyBuckets(txns)

	require.Len(t, buckets, 2)
	assert.Equal(t, time.January, buckets[0].month.Month())
	assert.Equal(t, 130.0, buckets[0].total)
	assert.Equal(t, 65.0, buckets[0].mean)
	assert.Equal(t, 2, buckets[0].count)
	assert.Equal(t, 1, buckets[0].incomeCount)
	assert.Equal(t, 1, buckets[0].expenseCount)
	assert.Equal(t, time.February, buckets[1].month.Month())
}

func TestBalanceRiskLevel(t *testing.T) {
	tests := []struct {
		name    string
		balance float64
		flow    float64
		want    models.RiskLevel
	}{
		{"negative balance is critical", -100, 500, models.RiskCritical},
		{"under two months of flow is high", 800, 500, models.RiskHigh},
		{"under six months of flow is medium", 2500, 500, models.RiskMedium},
		{"otherwise low", 5000, 500, models.RiskLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, balanceRiskLevel(tt.balance, tt.flow))
		})
	}
}

func TestBalanceFactors(t *testing.T) {
	assert.Equal(t, []string{"Low emergency fund"}, balanceFactors(1000, 500))
	assert.Contains(t, balanceFactors(-100, -50), "Negative cash flow")
	assert.Equal(t, []string{"Strong savings position"}, balanceFactors(10000, 500))
	assert.Equal(t, []string{"Stable financial position"}, balanceFactors(3000, 500))
}

func TestForecastSavingsGoals_InvalidContribution(t *testing.T) {
	forecaster := newTestForecaster()

	for _, contribution := range []float64{0, -50} {
		forecast, insights, confidence := forecaster.ForecastSavingsGoals(1000, contribution, 5000, 0.07)

		assert.NotEmpty(t, forecast.Error)
		assert.Empty(t, insights)
		assert.Equal(t, 0.1, confidence)
	}
}

func TestForecastSavingsGoals_ZeroRateIsExact(t *testing.T) {
	forecaster := newTestForecaster()

	forecast, insights, confidence := forecaster.ForecastSavingsGoals(0, 100, 1200, 0)

	assert.Equal(t, 12.0, forecast.MonthsToGoal)
	assert.Equal(t, 1.0, forecast.YearsToGoal)
	assert.Equal(t, 1200.0, forecast.TotalContributions)
	assert.Equal(t, 0.9, forecast.FeasibilityScore)
	assert.Empty(t, insights)
	assert.Equal(t, 0.88, confidence)

	// 12 months to goal plus a 12 month tail, all interest-free.
	require.Len(t, forecast.MonthlyProjections, 24)
	for i, projection := range forecast.MonthlyProjections {
		assert.Equal(t, i+1, projection.Month)
		assert.InDelta(t, 100*float64(i+1), projection.Balance, 1e-9)
		assert.InDelta(t, 0, projection.InterestEarned, 1e-9)
	}
}

func TestForecastSavingsGoals_TargetAlreadyMet(t *testing.T) {
	forecaster := newTestForecaster()

	forecast, insights, _ := forecaster.ForecastSavingsGoals(5000, 100, 5000, 0.07)

	assert.Equal(t, 0.0, forecast.MonthsToGoal)
	assert.Equal(t, 0.9, forecast.FeasibilityScore)
	assert.Len(t, forecast.MonthlyProjections, 12)
	assert.Empty(t, insights)
}

func TestForecastSavingsGoals_LongGoalWarns(t *testing.T) {
	forecaster := newTestForecaster()

	forecast, insights, confidence := forecaster.ForecastSavingsGoals(0, 100, 50000, 0)

	// 500 months at 100/month, no interest
	assert.Equal(t, 500.0, forecast.MonthsToGoal)
	assert.Equal(t, 0.3, forecast.FeasibilityScore)
	assert.Len(t, forecast.MonthlyProjections, 24)

	require.Len(t, insights, 1)
	assert.Equal(t, models.SeverityWarning, insights[0].Severity)
	assert.Equal(t, "goal_forecast", insights[0].Category)
	assert.Equal(t, 60.0, *insights[0].TargetAmount)
	assert.InDelta(t, (500.0-60)/60*100, *insights[0].PercentageChange, 1e-9)
	assert.Equal(t, 0.88, confidence)
}

func TestForecastSavingsGoals_CapsAtOneHundredYears(t *testing.T) {
	forecaster := newTestForecaster()

	forecast, _, _ := forecaster.ForecastSavingsGoals(0, 1, 1e9, 0)

	assert.Equal(t, float64(goalMonthsCap), forecast.MonthsToGoal)
	assert.Equal(t, 0.3, forecast.FeasibilityScore)
}

func TestMonthsToTarget_CompoundInterest(t *testing.T) {
	// 7% annual on 10k toward 20k at 200/month: interest shortens the
	// timeline versus the 50 interest-free months.
	withInterest := monthsToTarget(10000, 200, 20000, 0.07)
	withoutInterest := monthsToTarget(10000, 200, 20000, 0)

	assert.Equal(t, 50, withoutInterest)
	assert.Less(t, withInterest, withoutInterest)
	assert.Greater(t, withInterest, 0)
}
