package service

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"finsight/internal/models"
)

const (
	riskFactorEmergencyFund = "Low emergency fund coverage"
	riskFactorSpending      = "High discretionary spending"
	riskFactorIncome        = "Unstable income sources"
	riskFactorDebt          = "High debt-to-income ratio"
)

// defaultDebtToIncome is assumed when the profile carries no ratio.
const defaultDebtToIncome = 0.3

// RiskService computes a weighted financial risk score from liquidity,
// spending, income and debt dimensions.
type RiskService struct {
	logger *zap.Logger
}

func NewRiskService(logger *zap.Logger) *RiskService {
	return &RiskService{logger: logger}
}

// AssessFinancialRisk scores the four risk dimensions and combines them.
// An internal failure degrades to a neutral assessment instead of an error.
func (s *RiskService) AssessFinancialRisk(
	profile models.UserProfile,
	transactions []models.Transaction,
) (assessment models.RiskAssessment, insights []models.Insight, confidence float64) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("risk assessment failed", zap.Any("cause", r))
			assessment = models.RiskAssessment{
				OverallRiskScore:     0.5,
				RiskFactors:          []string{"Unable to assess - data error"},
				MitigationStrategies: []string{"Review financial records"},
				ConfidenceLevel:      0.1,
			}
			insights = nil
			confidence = 0.1
		}
	}()

	liquidityRisk := assessLiquidityRisk(transactions)
	spendingRisk := assessSpendingRisk(transactions)
	incomeRisk := assessIncomeRisk(transactions)
	debtRisk := assessDebtRisk(profile)

	overall := liquidityRisk*0.30 + spendingRisk*0.25 + incomeRisk*0.25 + debtRisk*0.20

	var factors []string
	if liquidityRisk > 0.7 {
		factors = append(factors, riskFactorEmergencyFund)
	}
	if spendingRisk > 0.7 {
		factors = append(factors, riskFactorSpending)
	}
	if incomeRisk > 0.7 {
		factors = append(factors, riskFactorIncome)
	}
	if debtRisk > 0.7 {
		factors = append(factors, riskFactorDebt)
	}

	if overall > 0.6 {
		insights = append(insights, models.Insight{
			Type:     models.InsightRisk,
			Severity: models.SeverityCritical,
			Category: "risk_assessment",
			Message: fmt.Sprintf("High financial risk detected (score: %.1f/1.0). Immediate attention required.",
				overall),
			CurrentAmount:    models.Float(overall * 100),
			PercentageChange: models.Float(0),
		})
	}

	assessment = models.RiskAssessment{
		OverallRiskScore:     overall,
		RiskFactors:          factors,
		MitigationStrategies: mitigationStrategies(factors),
		ConfidenceLevel:      0.82,
	}

	s.logger.Debug("risk assessment completed",
		zap.Float64("overall", overall),
		zap.Int("factors", len(factors)),
	)

	return assessment, insights, 0.82
}

// assessLiquidityRisk compares the running balance to six months of average
// expenses. 0.5 when there are no expenses to average.
func assessLiquidityRisk(transactions []models.Transaction) float64 {
	var totalExpenses float64
	months := make(map[string]bool)
	for _, tx := range transactions {
		if tx.Type != models.TypeExpense {
			continue
		}
		totalExpenses += tx.Amount
		months[tx.Date.Format("2006-01")] = true
	}
	if totalExpenses == 0 {
		return 0.5
	}

	monthlyExpenses := totalExpenses / math.Max(1, float64(len(months)))
	recommendedFund := monthlyExpenses * 6

	coverage := 0.0
	if recommendedFund > 0 {
		coverage = currentBalance(transactions) / recommendedFund
	}
	return clamp01(1 - coverage)
}

// assessSpendingRisk scales the discretionary share of expenses to [0,1].
func assessSpendingRisk(transactions []models.Transaction) float64 {
	var total, discretionary float64
	for _, tx := range transactions {
		if tx.Type != models.TypeExpense {
			continue
		}
		total += tx.Amount
		if models.DiscretionaryCategories[strings.ToLower(tx.Category)] {
			discretionary += tx.Amount
		}
	}
	if total == 0 {
		return 0.5
	}
	return clamp01(discretionary / total * 2)
}

// assessIncomeRisk uses the coefficient of variation of income amounts, with
// a flat penalty when fewer than three income records exist.
func assessIncomeRisk(transactions []models.Transaction) float64 {
	var amounts []float64
	for _, tx := range transactions {
		if tx.Type == models.TypeIncome {
			amounts = append(amounts, tx.Amount)
		}
	}
	if len(amounts) < 3 {
		return 0.8
	}

	meanIncome := mean(amounts)
	cv := 1.0
	if meanIncome > 0 {
		cv = stdDev(amounts) / meanIncome
	}
	return math.Min(1, cv)
}

func assessDebtRisk(profile models.UserProfile) float64 {
	ratio := defaultDebtToIncome
	if profile.DebtToIncomeRatio != nil {
		ratio = *profile.DebtToIncomeRatio
	}
	return clamp01(ratio * 2)
}

// mitigationStrategies maps each risk factor to its fixed strategy set and
// deduplicates across factors, preserving first-seen order.
func mitigationStrategies(factors []string) []string {
	var strategies []string
	seen := make(map[string]bool)
	add := func(items ...string) {
		for _, item := range items {
			if !seen[item] {
				seen[item] = true
				strategies = append(strategies, item)
			}
		}
	}

	for _, factor := range factors {
		lower := strings.ToLower(factor)
		switch {
		case strings.Contains(lower, "emergency fund"):
			add(
				"Build 3-6 months of expenses in emergency fund",
				"Automate monthly transfers to savings",
				"Cut discretionary spending by 20%",
			)
		case strings.Contains(lower, "spending"):
			add(
				"Create category budgets and stick to them",
				"Use cash-only for discretionary purchases",
				"Track every expense for one month",
			)
		case strings.Contains(lower, "income"):
			add(
				"Develop multiple income streams",
				"Build skills for higher-paying opportunities",
				"Create a side hustle or freelance work",
			)
		case strings.Contains(lower, "debt"):
			add(
				"Focus on high-interest debt first (avalanche method)",
				"Consider debt consolidation",
				"Negotiate lower interest rates with creditors",
			)
		}
	}

	return strategies
}

// currentBalance is income minus expenses over the whole history.
func currentBalance(transactions []models.Transaction) float64 {
	var balance float64
	for _, tx := range transactions {
		switch tx.Type {
		case models.TypeIncome:
			balance += tx.Amount
		case models.TypeExpense:
			balance -= tx.Amount
		}
	}
	return balance
}
