package service

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"finsight/internal/models"
	"finsight/pkg/config"
)

// AnalyzerService detects spending patterns, scores budget health and ranks
// savings potential. Every method is a pure function of its inputs.
type AnalyzerService struct {
	cfg    config.EngineConfig
	logger *zap.Logger
}

func NewAnalyzerService(cfg config.EngineConfig, logger *zap.Logger) *AnalyzerService {
	return &AnalyzerService{
		cfg:    cfg,
		logger: logger,
	}
}

// GroupByCategory groups transactions by lower-cased category, defaulting to
// "uncategorized". Insertion order within a category is preserved.
func GroupByCategory(transactions []models.Transaction) map[string][]models.Transaction {
	grouped, _ := groupByCategory(transactions)
	return grouped
}

// groupByCategory also returns the categories in first-seen order so callers
// can iterate deterministically.
func groupByCategory(transactions []models.Transaction) (map[string][]models.Transaction, []string) {
	grouped := make(map[string][]models.Transaction)
	var order []string
	for _, tx := range transactions {
		category := strings.ToLower(tx.Category)
		if category == "" {
			category = "uncategorized"
		}
		if _, ok := grouped[category]; !ok {
			order = append(order, category)
		}
		grouped[category] = append(grouped[category], tx)
	}
	return grouped, order
}

// AnalyzeSpendingPatterns scans for per-category anomalies and upward trends.
// Returns the insights, a one-line summary and a confidence score.
func (s *AnalyzerService) AnalyzeSpendingPatterns(
	transactions []models.Transaction,
	period string,
	includeCategories []string,
) ([]models.Insight, string, float64) {
	if len(transactions) == 0 {
		return nil, "No transaction data available for analysis", 0.5
	}

	if len(includeCategories) > 0 {
		wanted := make(map[string]bool, len(includeCategories))
		for _, c := range includeCategories {
			wanted[strings.ToLower(c)] = true
		}
		var filtered []models.Transaction
		for _, tx := range transactions {
			if wanted[strings.ToLower(tx.Category)] {
				filtered = append(filtered, tx)
			}
		}
		transactions = filtered
	}

	var insights []models.Insight
	grouped, order := groupByCategory(transactions)
	for _, category := range order {
		insights = append(insights, s.analyzeCategory(category, grouped[category])...)
	}

	summary := generateSummary(insights)
	confidence := math.Min(0.95, 0.5+float64(len(transactions))/100)

	s.logger.Debug("spending pattern analysis completed",
		zap.String("period", period),
		zap.Int("transactions", len(transactions)),
		zap.Int("insights", len(insights)),
	)

	return insights, summary, confidence
}

// AnalyzeBudgetHealth scores the savings rate against the configured target.
// monthlyIncome overrides the income observed in the transactions when > 0.
func (s *AnalyzerService) AnalyzeBudgetHealth(
	transactions []models.Transaction,
	monthlyIncome *float64,
) ([]models.Insight, string, float64) {
	if len(transactions) == 0 {
		return nil, "Insufficient data for budget analysis", 0.5
	}

	var totalIncome, totalExpenses float64
	for _, tx := range transactions {
		switch tx.Type {
		case models.TypeIncome:
			totalIncome += tx.Amount
		case models.TypeExpense:
			totalExpenses += tx.Amount
		}
	}

	income := totalIncome
	if monthlyIncome != nil && *monthlyIncome > 0 {
		income = *monthlyIncome
	}

	var insights []models.Insight
	if income > 0 {
		target := s.cfg.SavingsTargetRate
		savingsRate := (income - totalExpenses) / income * 100

		insight := models.Insight{
			Category:         "savings",
			CurrentAmount:    models.Float(savingsRate),
			AverageAmount:    models.Float(target),
			PercentageChange: models.Float(savingsRate - target),
		}
		switch {
		case savingsRate < 10:
			insight.Type = models.InsightRisk
			insight.Severity = models.SeverityCritical
			insight.Message = fmt.Sprintf("Savings rate is critically low at %.1f%%. Target: %.0f%%+", savingsRate, target)
		case savingsRate < 20:
			insight.Type = models.InsightRisk
			insight.Severity = models.SeverityWarning
			insight.Message = fmt.Sprintf("Savings rate is below target at %.1f%%. Aim for %.0f%%+", savingsRate, target)
		default:
			insight.Type = models.InsightOpportunity
			insight.Severity = models.SeverityInfo
			insight.Message = fmt.Sprintf("Good savings rate at %.1f%%. Keep it up!", savingsRate)
		}
		insights = append(insights, insight)
	}

	return insights, generateSummary(insights), 0.85
}

// IdentifySavingsPotential ranks expense categories by total spend and
// suggests a 15% reduction for the top three.
func (s *AnalyzerService) IdentifySavingsPotential(
	transactions []models.Transaction,
) ([]models.Insight, string, float64) {
	if len(transactions) == 0 {
		return nil, "No transaction data available", 0.5
	}

	var expenses []models.Transaction
	for _, tx := range transactions {
		if tx.Type == models.TypeExpense {
			expenses = append(expenses, tx)
		}
	}

	grouped, order := groupByCategory(expenses)

	totals := make(map[string]float64, len(grouped))
	for category, txns := range grouped {
		for _, tx := range txns {
			totals[category] += tx.Amount
		}
	}
	// Highest spend first; ties broken by name for a stable ranking.
	sort.SliceStable(order, func(i, j int) bool {
		if totals[order[i]] != totals[order[j]] {
			return totals[order[i]] > totals[order[j]]
		}
		return order[i] < order[j]
	})

	var insights []models.Insight
	for _, category := range order {
		if len(insights) == 3 {
			break
		}
		total := totals[category]
		potential := total * 0.15
		insights = append(insights, models.Insight{
			Type:     models.InsightOpportunity,
			Severity: models.SeverityInfo,
			Category: category,
			Message: fmt.Sprintf("Potential to save $%.2f/month in %s. Try 15%% reduction.",
				potential, category),
			CurrentAmount:    models.Float(total),
			PercentageChange: models.Float(-15.0),
		})
	}

	return insights, generateSummary(insights), 0.80
}

// analyzeCategory flags the single most extreme anomaly and any sustained
// upward trend within one category.
func (s *AnalyzerService) analyzeCategory(category string, transactions []models.Transaction) []models.Insight {
	amounts := make([]float64, len(transactions))
	for i, tx := range transactions {
		amounts[i] = tx.Amount
	}
	if len(amounts) == 0 {
		return nil
	}

	var insights []models.Insight

	m := mean(amounts)
	std := stdDev(amounts)

	if std > 0 {
		var peak, peakDev float64
		for _, a := range amounts {
			if dev := math.Abs(a - m); dev > s.cfg.AnomalyStdDevs*std && dev > peakDev {
				peak, peakDev = a, dev
			}
		}
		if peakDev > 0 {
			pct := 0.0
			if m > 0 {
				pct = (peak - m) / m * 100
			}
			insights = append(insights, models.Insight{
				Type:     models.InsightAnomaly,
				Severity: models.SeverityAlert,
				Category: category,
				Message: fmt.Sprintf("Unusual spike detected in %s. Current: $%.2f, Typical: $%.2f",
					category, peak, m),
				CurrentAmount:    models.Float(peak),
				AverageAmount:    models.Float(m),
				PercentageChange: models.Float(pct),
			})
		}
	}

	if len(transactions) >= 3 {
		sorted := make([]models.Transaction, len(transactions))
		copy(sorted, transactions)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Date.Before(sorted[j].Date)
		})
		recent := make([]float64, 0, 3)
		for _, tx := range sorted[len(sorted)-3:] {
			recent = append(recent, tx.Amount)
		}

		if classifyTrend(recent) == models.TrendIncreasing {
			var percentChange float64
			if recent[0] > 0 {
				percentChange = (recent[2] - recent[0]) / recent[0] * 100
			}
			if percentChange > 20 {
				insights = append(insights, models.Insight{
					Type:     models.InsightTrend,
					Severity: models.SeverityWarning,
					Category: category,
					Message: fmt.Sprintf("%s spending is trending upward (%.1f%%)",
						capitalize(category), percentChange),
					Trend:            models.TrendIncreasing,
					PercentageChange: models.Float(percentChange),
				})
			}
		}
	}

	return insights
}

// generateSummary reduces a set of insights to a single line, keyed off the
// highest severity present.
func generateSummary(insights []models.Insight) string {
	if len(insights) == 0 {
		return "No significant financial patterns detected in your spending."
	}

	var critical, alerts, warnings int
	for _, insight := range insights {
		switch insight.Severity {
		case models.SeverityCritical:
			critical++
		case models.SeverityAlert:
			alerts++
		case models.SeverityWarning:
			warnings++
		}
	}

	switch {
	case critical > 0:
		return fmt.Sprintf("Critical: %d critical issue(s) found. Review immediately.", critical)
	case alerts > 0:
		return fmt.Sprintf("Alert: %d alert(s) detected. Review spending in these areas.", alerts)
	case warnings > 0:
		return fmt.Sprintf("%d area(s) need attention. Consider reducing discretionary spending.", warnings)
	default:
		return "Your spending patterns look healthy. Keep monitoring for changes."
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
