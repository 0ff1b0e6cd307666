package models

type RecommendationPriority string

const (
	PriorityCritical RecommendationPriority = "critical"
	PriorityHigh     RecommendationPriority = "high"
	PriorityMedium   RecommendationPriority = "medium"
	PriorityLow      RecommendationPriority = "low"
)

// AdviceType selects a recommendation strategy.
type AdviceType string

const (
	AdviceSavingsOptimization AdviceType = "savings_optimization"
	AdviceDebtManagement      AdviceType = "debt_management"
	AdviceInvestmentStrategy  AdviceType = "investment_strategy"
	AdviceBudgetCreation      AdviceType = "budget_creation"
	AdviceExpenseReduction    AdviceType = "expense_reduction"
	AdviceIncomeGrowth        AdviceType = "income_growth"
)

type Recommendation struct {
	Priority      RecommendationPriority `json:"priority"`
	Category      string                 `json:"category"`
	Title         string                 `json:"title"`
	Description   string                 `json:"description"`
	CurrentStatus string                 `json:"current_status"`
	TargetAmount  *float64               `json:"target_amount,omitempty"`
	CurrentAmount *float64               `json:"current_amount,omitempty"`
	ActionItems   []string               `json:"action_items,omitempty"`
	Timeframe     string                 `json:"timeframe,omitempty"`
}

// EstimatedImpact summarizes the projected effect of a set of recommendations.
// Fields are populated per advice type; absent ones are omitted from JSON.
type EstimatedImpact struct {
	MonthlySavingsIncrease    *float64 `json:"monthlySavingsIncrease,omitempty"`
	AnnualSavingsIncrease     *float64 `json:"annualSavingsIncrease,omitempty"`
	ProjectedNetWorth10Years  *float64 `json:"projectedNetWorth10Years,omitempty"`
	InterestSavings           *float64 `json:"interestSavings,omitempty"`
	PayoffTimeReduction       string   `json:"payoffTimeReduction,omitempty"`
	CreditScoreImprovement    string   `json:"creditScoreImprovement,omitempty"`
	SavingsAsPercentOfIncome  *float64 `json:"savingsAsPercentOfIncome,omitempty"`
}
