package service

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"finsight/internal/models"
)

// AdviceContext carries the caller-supplied figures the recommendation
// strategies work from. All fields are optional; zero values fall back to
// the documented defaults of each strategy.
type AdviceContext struct {
	// MonthlyIncome in the transaction currency. Expense reduction assumes
	// 1000 when unset so the percent-of-income figure stays defined.
	MonthlyIncome float64
	// CurrentSavingsRate as a percent of income.
	CurrentSavingsRate float64
	// FinancialGoals gates the optional savings recommendations, e.g.
	// "emergency_fund", "retirement".
	FinancialGoals []string
	// TotalDebt, MonthlyPayment and InterestRate (annual, percent) feed the
	// debt management strategy.
	TotalDebt      float64
	MonthlyPayment float64
	InterestRate   float64
	// CategorySpending maps lower-cased category to monthly spend.
	CategorySpending map[string]float64
}

func (c AdviceContext) hasGoal(goal string) bool {
	for _, g := range c.FinancialGoals {
		if g == goal {
			return true
		}
	}
	return false
}

// RecommendationService maps an advice type plus context into prioritized
// recommendations and an estimated impact.
type RecommendationService struct {
	logger *zap.Logger
}

func NewRecommendationService(logger *zap.Logger) *RecommendationService {
	return &RecommendationService{logger: logger}
}

// GenerateAdvice dispatches to the strategy for adviceType. Unsupported
// types are a validation error.
func (s *RecommendationService) GenerateAdvice(
	adviceType models.AdviceType,
	ctx AdviceContext,
) ([]models.Recommendation, models.EstimatedImpact, float64, error) {
	switch adviceType {
	case models.AdviceSavingsOptimization:
		recs, impact, confidence := s.savingsOptimization(ctx)
		return recs, impact, confidence, nil
	case models.AdviceDebtManagement:
		recs, impact, confidence := s.debtManagement(ctx)
		return recs, impact, confidence, nil
	case models.AdviceExpenseReduction:
		recs, impact, confidence := s.expenseReduction(ctx)
		return recs, impact, confidence, nil
	default:
		return nil, models.EstimatedImpact{}, 0,
			fmt.Errorf("unsupported advice type: %s", adviceType)
	}
}

func (s *RecommendationService) savingsOptimization(ctx AdviceContext) ([]models.Recommendation, models.EstimatedImpact, float64) {
	var recommendations []models.Recommendation

	if ctx.hasGoal("emergency_fund") {
		target := ctx.MonthlyIncome * 4
		recommendations = append(recommendations, models.Recommendation{
			Priority: models.PriorityHigh,
			Category: "emergency_fund",
			Title:    "Build Emergency Fund",
			Description: fmt.Sprintf(
				"Establish an emergency fund of $%.2f (4 months of expenses) to handle unexpected costs",
				target),
			CurrentStatus: "In Progress",
			TargetAmount:  models.Float(target),
			CurrentAmount: models.Float(target * 0.4),
			ActionItems: []string{
				"Set up automatic transfer of $300/month to savings",
				"Use high-yield savings account (4.5% APY)",
				"Keep funds liquid and accessible",
			},
			Timeframe: "6 months",
		})
	}

	var additionalMonthly float64
	if ctx.hasGoal("retirement") {
		currentContribution := ctx.MonthlyIncome * 0.06 // assumed baseline
		recommendedContribution := ctx.MonthlyIncome * 0.15
		additionalMonthly = recommendedContribution - currentContribution

		recommendations = append(recommendations, models.Recommendation{
			Priority:      models.PriorityHigh,
			Category:      "retirement",
			Title:         "Increase Retirement Contributions",
			Description:   "Increase retirement savings to ensure comfortable retirement",
			CurrentStatus: "In Progress",
			TargetAmount:  models.Float(recommendedContribution * 12),
			CurrentAmount: models.Float(currentContribution * 12),
			ActionItems: []string{
				fmt.Sprintf("Increase 401(k) from 6%% to 15%% (+$%.2f/month)", additionalMonthly),
				"Max out employer match immediately",
				"Consider Roth IRA for additional tax benefits",
			},
			Timeframe: "3 months",
		})
	}

	recommendations = append(recommendations, models.Recommendation{
		Priority:      models.PriorityMedium,
		Category:      "debt_reduction",
		Title:         "Create Debt Payoff Plan",
		Description:   "Develop a strategic plan to eliminate high-interest debt",
		CurrentStatus: "Not Started",
		ActionItems: []string{
			"List all debts with interest rates",
			"Use debt snowball or avalanche method",
			"Consider balance transfer for credit card debt",
		},
		Timeframe: "12 months",
	})

	impact := models.EstimatedImpact{
		MonthlySavingsIncrease:   models.Float(additionalMonthly),
		AnnualSavingsIncrease:    models.Float(additionalMonthly * 12),
		ProjectedNetWorth10Years: models.Float(ctx.MonthlyIncome * 0.20 * 120),
	}

	return recommendations, impact, 0.88
}

func (s *RecommendationService) debtManagement(ctx AdviceContext) ([]models.Recommendation, models.EstimatedImpact, float64) {
	var recommendations []models.Recommendation

	// Months to payoff with the interest offset deducted from the payment.
	var monthsToPayoff float64
	accelStatus := "In Progress"
	if ctx.MonthlyPayment > 0 && ctx.TotalDebt > 0 {
		denominator := ctx.MonthlyPayment - ctx.TotalDebt*ctx.InterestRate/100/12
		if denominator <= 0 {
			// Payment does not cover accruing interest; the timeline is
			// unbounded, so surface that instead of a fictional number.
			monthsToPayoff = 1
			accelStatus = "Payment Insufficient"
			s.logger.Warn("monthly payment does not cover interest",
				zap.Float64("payment", ctx.MonthlyPayment),
				zap.Float64("debt", ctx.TotalDebt),
			)
		} else {
			monthsToPayoff = math.Max(1, ctx.TotalDebt/denominator)
		}
	}

	recommendations = append(recommendations, models.Recommendation{
		Priority: models.PriorityCritical,
		Category: "debt_payoff",
		Title:    "Accelerate Debt Payoff",
		Description: fmt.Sprintf(
			"At current rate, payoff in %.0f months. Consider increasing payments to reduce interest.",
			monthsToPayoff),
		CurrentStatus: accelStatus,
		TargetAmount:  models.Float(0),
		CurrentAmount: models.Float(ctx.TotalDebt),
		ActionItems: []string{
			fmt.Sprintf("Increase monthly payment from $%.2f to $%.2f",
				ctx.MonthlyPayment, ctx.MonthlyPayment*1.5),
			fmt.Sprintf("This saves $%.2f in interest", ctx.InterestRate*100),
			"Redirect bonuses/tax refunds to debt",
		},
		Timeframe: fmt.Sprintf("%d months", max(6, int(monthsToPayoff/2))),
	})

	if ctx.InterestRate > 15 {
		recommendations = append(recommendations, models.Recommendation{
			Priority:      models.PriorityHigh,
			Category:      "balance_transfer",
			Title:         "Consider Balance Transfer",
			Description:   "Move debt to 0% APR balance transfer card",
			CurrentStatus: "Not Started",
			ActionItems: []string{
				"Search for 0% APR balance transfer offers (12-21 months)",
				"Compare transfer fees vs interest savings",
				"Apply for card and transfer balance immediately",
			},
			Timeframe: "1 month",
		})
	}

	impact := models.EstimatedImpact{
		InterestSavings:        models.Float(ctx.TotalDebt * (ctx.InterestRate / 100) * (monthsToPayoff / 12)),
		PayoffTimeReduction:    fmt.Sprintf("%d months", int(monthsToPayoff/2)),
		CreditScoreImprovement: "50-100 points",
	}

	return recommendations, impact, 0.82
}

// expenseReductionOrder is the fixed priority the reduction strategy walks.
var expenseReductionOrder = []struct {
	category string
	title    string
}{
	{"subscriptions", "Review Subscriptions"},
	{"dining", "Reduce Dining Out"},
	{"entertainment", "Entertainment Budget"},
	{"shopping", "Smart Shopping"},
}

func (s *RecommendationService) expenseReduction(ctx AdviceContext) ([]models.Recommendation, models.EstimatedImpact, float64) {
	monthlyIncome := ctx.MonthlyIncome
	if monthlyIncome <= 0 {
		monthlyIncome = 1000
	}

	var recommendations []models.Recommendation
	var totalPotentialSavings float64

	for _, entry := range expenseReductionOrder {
		amount := ctx.CategorySpending[entry.category]
		if amount <= 0 {
			continue
		}
		savings := amount * 0.20
		totalPotentialSavings += savings

		firstAction := "Cook at home 2x/week instead of dining out"
		if entry.category == "subscriptions" {
			firstAction = "Cancel unused subscriptions"
		}

		recommendations = append(recommendations, models.Recommendation{
			Priority: models.PriorityMedium,
			Category: entry.category,
			Title:    entry.title,
			Description: fmt.Sprintf("Reduce %s spending by 20%% (save $%.2f/month)",
				entry.category, savings),
			CurrentStatus: "Not Started",
			CurrentAmount: models.Float(amount),
			TargetAmount:  models.Float(amount * 0.80),
			ActionItems: []string{
				firstAction,
				"Set monthly budget for this category",
				"Track spending weekly",
			},
			Timeframe: "1 month",
		})
	}

	impact := models.EstimatedImpact{
		MonthlySavingsIncrease:   models.Float(totalPotentialSavings),
		AnnualSavingsIncrease:    models.Float(totalPotentialSavings * 12),
		SavingsAsPercentOfIncome: models.Float(totalPotentialSavings / monthlyIncome * 100),
	}

	return recommendations, impact, 0.79
}

// NormalizeCategorySpending lower-cases the keys of a category spending map
// so lookups match the fixed reduction order.
func NormalizeCategorySpending(spending map[string]float64) map[string]float64 {
	if spending == nil {
		return nil
	}
	normalized := make(map[string]float64, len(spending))
	for category, amount := range spending {
		normalized[strings.ToLower(category)] += amount
	}
	return normalized
}
