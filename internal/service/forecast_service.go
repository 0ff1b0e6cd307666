package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"finsight/internal/models"
	"finsight/pkg/config"
)

// goalMonthsCap bounds the compounding loop at 100 years.
const goalMonthsCap = 1200

// monthlyBucket aggregates one calendar month of transactions.
type monthlyBucket struct {
	month        time.Time
	total        float64
	mean         float64
	count        int
	incomeCount  int
	expenseCount int
}

// ForecastService projects cash flow with a regression model over monthly
// aggregates and forecasts savings goals with compound interest. The model
// is constructed per call through newModel; no state survives a call.
type ForecastService struct {
	cfg      config.EngineConfig
	newModel func() FlowModel
	logger   *zap.Logger
}

func NewForecastService(cfg config.EngineConfig, newModel func() FlowModel, logger *zap.Logger) *ForecastService {
	if newModel == nil {
		newModel = NewLeastSquaresModel
	}
	return &ForecastService{
		cfg:      cfg,
		newModel: newModel,
		logger:   logger,
	}
}

// PredictCashFlow projects the running balance monthsAhead months out.
// Fewer than 10 transactions yields an empty result at confidence 0.3; any
// internal failure degrades to an empty result at confidence 0.1.
func (s *ForecastService) PredictCashFlow(
	transactions []models.Transaction,
	monthsAhead int,
) (predictions []models.CashFlowPrediction, metadata models.PredictionMetadata, confidence float64) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("cash flow prediction failed", zap.Any("cause", r))
			predictions = nil
			metadata = models.PredictionMetadata{Error: fmt.Sprint(r)}
			confidence = 0.1
		}
	}()

	if monthsAhead <= 0 {
		monthsAhead = s.cfg.DefaultMonthsAhead
	}

	if len(transactions) < 10 {
		return nil, models.PredictionMetadata{Error: "insufficient transaction history"}, 0.3
	}

	buckets := buildMonthlyBuckets(transactions)
	if len(buckets) == 0 {
		return nil, models.PredictionMetadata{Error: "no valid transaction data"}, 0.3
	}

	model := s.newModel()
	if err := trainFlowModel(model, buckets); err != nil {
		s.logger.Warn("flow model training failed", zap.Error(err))
		return nil, models.PredictionMetadata{Error: err.Error()}, 0.1
	}

	balance := currentBalance(transactions)
	last := buckets[len(buckets)-1]
	lastIndex := len(buckets)
	now := time.Now()

	for month := 1; month <= monthsAhead; month++ {
		features := []float64{
			float64(lastIndex + month - 1),
			last.total,
			last.mean,
			float64(last.count),
		}
		flow := model.Predict(features)
		balance += flow

		predictions = append(predictions, models.CashFlowPrediction{
			Date:             now.AddDate(0, 0, month*30),
			PredictedBalance: roundMoney(balance),
			Confidence:       0.75,
			RiskLevel:        balanceRiskLevel(balance, flow),
			Factors:          balanceFactors(balance, flow),
		})
	}

	var lastDate time.Time
	for _, tx := range transactions {
		if tx.Date.After(lastDate) {
			lastDate = tx.Date
		}
	}

	metadata = models.PredictionMetadata{
		// Placeholder until a validation split produces a real figure.
		ModelAccuracy:       0.85,
		PredictionHorizon:   monthsAhead,
		DataPointsUsed:      len(buckets),
		LastTransactionDate: lastDate.Format("2006-01-02"),
	}
	confidence = math.Min(0.9, 0.5+float64(len(transactions))/200)

	s.logger.Debug("cash flow prediction completed",
		zap.Int("months_ahead", monthsAhead),
		zap.Int("buckets", len(buckets)),
	)

	return predictions, metadata, confidence
}

// ForecastSavingsGoals projects time-to-goal under monthly compounding.
// A non-positive contribution is a validation failure: error payload,
// confidence 0.1, no insights.
func (s *ForecastService) ForecastSavingsGoals(
	currentSavings, monthlyContribution, targetAmount, annualRate float64,
) (forecast models.GoalForecast, insights []models.Insight, confidence float64) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("goal forecasting failed", zap.Any("cause", r))
			forecast = models.GoalForecast{Error: fmt.Sprint(r)}
			insights = nil
			confidence = 0.1
		}
	}()

	if monthlyContribution <= 0 {
		return models.GoalForecast{Error: "invalid monthly contribution"}, nil, 0.1
	}

	monthsNeeded := monthsToTarget(currentSavings, monthlyContribution, targetAmount, annualRate)
	monthlyRate := annualRate / 12

	projectionCount := monthsNeeded + 12
	if projectionCount > 120 {
		projectionCount = 120
	}
	projections := make([]models.MonthlyProjection, 0, projectionCount)
	balance := currentSavings
	for month := 0; month < projectionCount; month++ {
		balance = balance*(1+monthlyRate) + monthlyContribution
		contributions := monthlyContribution * float64(month+1)
		projections = append(projections, models.MonthlyProjection{
			Month:          month + 1,
			Balance:        roundMoney(balance),
			Contributions:  contributions,
			InterestEarned: roundMoney(balance - currentSavings - contributions),
		})
	}
	if len(projections) > 24 {
		projections = projections[:24]
	}

	months := float64(monthsNeeded)
	forecast = models.GoalForecast{
		MonthsToGoal:       months,
		YearsToGoal:        math.Round(months/12*10) / 10,
		TotalContributions: roundMoney(monthlyContribution * months),
		TotalInterest:      roundMoney(targetAmount - currentSavings - monthlyContribution*months),
		MonthlyProjections: projections,
		FeasibilityScore:   feasibilityScore(monthsNeeded),
	}

	if monthsNeeded > 60 {
		insights = append(insights, models.Insight{
			Type:     models.InsightRisk,
			Severity: models.SeverityWarning,
			Category: "goal_forecast",
			Message: fmt.Sprintf("Goal may take %.1f years. Consider increasing contributions.",
				forecast.YearsToGoal),
			CurrentAmount:    models.Float(months),
			TargetAmount:     models.Float(60),
			PercentageChange: models.Float((months - 60) / 60 * 100),
		})
	}

	return forecast, insights, 0.88
}

// buildMonthlyBuckets groups transactions into calendar months, ordered
// chronologically. Totals sum raw amounts regardless of type.
func buildMonthlyBuckets(transactions []models.Transaction) []monthlyBucket {
	byMonth := make(map[time.Time]*monthlyBucket)
	for _, tx := range transactions {
		month := time.Date(tx.Date.Year(), tx.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		bucket, ok := byMonth[month]
		if !ok {
			bucket = &monthlyBucket{month: month}
			byMonth[month] = bucket
		}
		bucket.total += tx.Amount
		bucket.count++
		switch tx.Type {
		case models.TypeIncome:
			bucket.incomeCount++
		case models.TypeExpense:
			bucket.expenseCount++
		}
	}

	buckets := make([]monthlyBucket, 0, len(byMonth))
	for _, bucket := range byMonth {
		bucket.mean = bucket.total / float64(bucket.count)
		buckets = append(buckets, *bucket)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].month.Before(buckets[j].month)
	})
	return buckets
}

// trainFlowModel fits the model on all but the final bucket, each month's
// features predicting the following month's total.
func trainFlowModel(model FlowModel, buckets []monthlyBucket) error {
	if len(buckets) < 3 {
		return errTooFewSamples
	}

	features := make([][]float64, 0, len(buckets)-1)
	targets := make([]float64, 0, len(buckets)-1)
	for i := 0; i < len(buckets)-1; i++ {
		features = append(features, []float64{
			float64(i),
			buckets[i].total,
			buckets[i].mean,
			float64(buckets[i].count),
		})
		targets = append(targets, buckets[i+1].total)
	}
	return model.Fit(features, targets)
}

func balanceRiskLevel(balance, monthlyFlow float64) models.RiskLevel {
	switch {
	case balance < 0:
		return models.RiskCritical
	case balance < monthlyFlow*2:
		return models.RiskHigh
	case balance < monthlyFlow*6:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

func balanceFactors(balance, monthlyFlow float64) []string {
	var factors []string
	if balance < monthlyFlow*3 {
		factors = append(factors, "Low emergency fund")
	}
	if monthlyFlow < 0 {
		factors = append(factors, "Negative cash flow")
	}
	if balance > monthlyFlow*12 {
		factors = append(factors, "Strong savings position")
	}
	if len(factors) == 0 {
		factors = []string{"Stable financial position"}
	}
	return factors
}

// monthsToTarget iterates monthly compounding until the target is reached,
// capped at 100 years. Zero when the target is already met.
func monthsToTarget(current, monthly, target, annualRate float64) int {
	if target-current <= 0 {
		return 0
	}

	monthlyRate := annualRate / 12
	balance := current
	months := 0
	for balance < target && months < goalMonthsCap {
		balance = balance*(1+monthlyRate) + monthly
		months++
	}
	return months
}

func feasibilityScore(monthsNeeded int) float64 {
	switch {
	case monthsNeeded <= 12:
		return 0.9
	case monthsNeeded <= 60:
		return 0.7
	case monthsNeeded <= 120:
		return 0.5
	default:
		return 0.3
	}
}
