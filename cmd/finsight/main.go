package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"finsight/internal/dto"
	"finsight/internal/mockdata"
	"finsight/internal/models"
	"finsight/internal/service"
	"finsight/pkg/config"
	"finsight/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	root := newRootCmd(cfg, logger.Get())
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config, appLogger *zap.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:          "finsight",
		Short:        "Financial insight generator",
		SilenceUsage: true,
	}

	root.AddCommand(
		newAnalyzeCmd(cfg, appLogger),
		newAdviseCmd(appLogger),
		newPredictCmd(cfg, appLogger),
		newRiskCmd(appLogger),
		newGoalCmd(cfg, appLogger),
		newDemoCmd(cfg, appLogger),
	)
	return root
}

// loadTransactions reads a JSON transaction list, or generates a mock
// history when no input file is given.
func loadTransactions(input string, days int, seed int64) ([]models.Transaction, error) {
	if input == "" {
		return mockdata.NewGenerator(seed).SpendingHistory(days), nil
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	var transactions []models.Transaction
	if err := json.Unmarshal(data, &transactions); err != nil {
		return nil, fmt.Errorf("failed to parse transactions: %w", err)
	}
	return transactions, nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func newAnalyzeCmd(cfg *config.Config, appLogger *zap.Logger) *cobra.Command {
	var (
		analysisType string
		input        string
		categories   []string
		income       float64
		period       string
		seed         int64
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run a spending analysis",
		RunE: func(cmd *cobra.Command, args []string) error {
			transactions, err := loadTransactions(input, 30, seed)
			if err != nil {
				return err
			}

			analyzer := service.NewAnalyzerService(cfg.Engine, appLogger)

			var insights []models.Insight
			var summary string
			var confidence float64

			switch dto.AnalysisType(analysisType) {
			case dto.AnalysisSpendingPattern:
				insights, summary, confidence = analyzer.AnalyzeSpendingPatterns(transactions, period, categories)
			case dto.AnalysisBudgetHealth:
				var monthlyIncome *float64
				if income > 0 {
					monthlyIncome = &income
				}
				insights, summary, confidence = analyzer.AnalyzeBudgetHealth(transactions, monthlyIncome)
			case dto.AnalysisSavingsPotential:
				insights, summary, confidence = analyzer.IdentifySavingsPotential(transactions)
			default:
				return printJSON(dto.NewErrorResponse("BAD_REQUEST",
					fmt.Sprintf("unknown analysis type: %s", analysisType)))
			}

			return printJSON(dto.NewAnalysisResponse(dto.AnalysisType(analysisType), insights, summary, confidence))
		},
	}

	cmd.Flags().StringVar(&analysisType, "type", string(dto.AnalysisSpendingPattern), "Analysis type (spending_pattern, budget_health, savings_potential)")
	cmd.Flags().StringVar(&input, "input", "", "Path to a JSON transaction list (RFC3339 dates); mock data when omitted")
	cmd.Flags().StringSliceVar(&categories, "categories", nil, "Restrict analysis to these categories")
	cmd.Flags().Float64Var(&income, "income", 0, "Monthly income override for budget health")
	cmd.Flags().StringVar(&period, "period", "month", "Analysis period label")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Mock data seed")
	return cmd
}

func newAdviseCmd(appLogger *zap.Logger) *cobra.Command {
	var (
		adviceType     string
		monthlyIncome  float64
		savingsRate    float64
		goals          []string
		totalDebt      float64
		monthlyPayment float64
		interestRate   float64
		spending       map[string]string
	)

	cmd := &cobra.Command{
		Use:   "advise",
		Short: "Generate financial recommendations",
		RunE: func(cmd *cobra.Command, args []string) error {
			categorySpending := make(map[string]float64, len(spending))
			for category, raw := range spending {
				var amount float64
				if _, err := fmt.Sscanf(raw, "%g", &amount); err != nil {
					return fmt.Errorf("invalid spending amount for %s: %q", category, raw)
				}
				categorySpending[category] = amount
			}

			recommender := service.NewRecommendationService(appLogger)
			recs, impact, confidence, err := recommender.GenerateAdvice(models.AdviceType(adviceType), service.AdviceContext{
				MonthlyIncome:      monthlyIncome,
				CurrentSavingsRate: savingsRate,
				FinancialGoals:     goals,
				TotalDebt:          totalDebt,
				MonthlyPayment:     monthlyPayment,
				InterestRate:       interestRate,
				CategorySpending:   service.NormalizeCategorySpending(categorySpending),
			})
			if err != nil {
				return printJSON(dto.NewErrorResponse("VALIDATION_ERROR", err.Error()))
			}

			return printJSON(dto.NewAdviceResponse(models.AdviceType(adviceType), recs, impact, confidence))
		},
	}

	cmd.Flags().StringVar(&adviceType, "type", string(models.AdviceSavingsOptimization), "Advice type (savings_optimization, debt_management, expense_reduction)")
	cmd.Flags().Float64Var(&monthlyIncome, "monthly-income", 0, "Monthly income")
	cmd.Flags().Float64Var(&savingsRate, "savings-rate", 0, "Current savings rate in percent")
	cmd.Flags().StringSliceVar(&goals, "goals", nil, "Financial goals (emergency_fund, retirement)")
	cmd.Flags().Float64Var(&totalDebt, "total-debt", 0, "Total outstanding debt")
	cmd.Flags().Float64Var(&monthlyPayment, "monthly-payment", 0, "Current monthly debt payment")
	cmd.Flags().Float64Var(&interestRate, "interest-rate", 0, "Annual interest rate in percent")
	cmd.Flags().StringToStringVar(&spending, "spending", nil, "Category spending, e.g. dining=250,subscriptions=40")
	return cmd
}

func newPredictCmd(cfg *config.Config, appLogger *zap.Logger) *cobra.Command {
	var (
		input  string
		months int
		days   int
		seed   int64
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict future cash flow",
		RunE: func(cmd *cobra.Command, args []string) error {
			transactions, err := loadTransactions(input, days, seed)
			if err != nil {
				return err
			}

			forecaster := service.NewForecastService(cfg.Engine, nil, appLogger)
			predictions, metadata, confidence := forecaster.PredictCashFlow(transactions, months)
			return printJSON(dto.NewPredictionResponse(predictions, metadata, confidence))
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Path to a JSON transaction list; mock data when omitted")
	cmd.Flags().IntVar(&months, "months", cfg.Engine.DefaultMonthsAhead, "Months to predict ahead")
	cmd.Flags().IntVar(&days, "days", 180, "Days of mock history to generate")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Mock data seed")
	return cmd
}

func newRiskCmd(appLogger *zap.Logger) *cobra.Command {
	var (
		input     string
		debtRatio float64
		days      int
		seed      int64
	)

	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Assess financial risk",
		RunE: func(cmd *cobra.Command, args []string) error {
			transactions, err := loadTransactions(input, days, seed)
			if err != nil {
				return err
			}

			var profile models.UserProfile
			if cmd.Flags().Changed("debt-ratio") {
				profile.DebtToIncomeRatio = &debtRatio
			}

			assessor := service.NewRiskService(appLogger)
			assessment, insights, confidence := assessor.AssessFinancialRisk(profile, transactions)
			return printJSON(dto.NewRiskResponse(assessment, insights, confidence))
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Path to a JSON transaction list; mock data when omitted")
	cmd.Flags().Float64Var(&debtRatio, "debt-ratio", 0, "Debt-to-income ratio (defaults to 0.3 when unset)")
	cmd.Flags().IntVar(&days, "days", 90, "Days of mock history to generate")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Mock data seed")
	return cmd
}

func newGoalCmd(cfg *config.Config, appLogger *zap.Logger) *cobra.Command {
	var current, monthly, target, rate float64

	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Forecast a savings goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			forecaster := service.NewForecastService(cfg.Engine, nil, appLogger)
			forecast, insights, confidence := forecaster.ForecastSavingsGoals(current, monthly, target, rate)
			if forecast.Error != "" {
				return printJSON(dto.NewErrorResponse("VALIDATION_ERROR", forecast.Error))
			}
			return printJSON(dto.NewGoalForecastResponse(forecast, insights, confidence))
		},
	}

	cmd.Flags().Float64Var(&current, "current", 0, "Current savings balance")
	cmd.Flags().Float64Var(&monthly, "monthly", 0, "Monthly contribution")
	cmd.Flags().Float64Var(&target, "target", 0, "Target amount")
	cmd.Flags().Float64Var(&rate, "rate", cfg.Engine.DefaultAnnualReturn, "Expected annual return rate")
	return cmd
}

// newDemoCmd runs the independent analyses concurrently over one mock
// history. The engine is stateless, so fan-out needs no coordination.
func newDemoCmd(cfg *config.Config, appLogger *zap.Logger) *cobra.Command {
	var (
		days int
		seed int64
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run every analysis over a generated history",
		RunE: func(cmd *cobra.Command, args []string) error {
			transactions := mockdata.NewGenerator(seed).SpendingHistory(days)

			analyzer := service.NewAnalyzerService(cfg.Engine, appLogger)
			assessor := service.NewRiskService(appLogger)
			forecaster := service.NewForecastService(cfg.Engine, nil, appLogger)

			var (
				patterns AnalysisResult
				budget   AnalysisResult
				savings  AnalysisResult
				risk     dto.RiskResponse
				cashFlow dto.PredictionResponse
			)

			var g errgroup.Group
			g.Go(func() error {
				insights, summary, confidence := analyzer.AnalyzeSpendingPatterns(transactions, "month", nil)
				patterns = AnalysisResult{insights, summary, confidence}
				return nil
			})
			g.Go(func() error {
				insights, summary, confidence := analyzer.AnalyzeBudgetHealth(transactions, nil)
				budget = AnalysisResult{insights, summary, confidence}
				return nil
			})
			g.Go(func() error {
				insights, summary, confidence := analyzer.IdentifySavingsPotential(transactions)
				savings = AnalysisResult{insights, summary, confidence}
				return nil
			})
			g.Go(func() error {
				assessment, insights, confidence := assessor.AssessFinancialRisk(models.UserProfile{}, transactions)
				risk = dto.NewRiskResponse(assessment, insights, confidence)
				return nil
			})
			g.Go(func() error {
				predictions, metadata, confidence := forecaster.PredictCashFlow(transactions, cfg.Engine.DefaultMonthsAhead)
				cashFlow = dto.NewPredictionResponse(predictions, metadata, confidence)
				return nil
			})
			if err := g.Wait(); err != nil {
				return err
			}

			return printJSON(map[string]any{
				"spendingPatterns": dto.NewAnalysisResponse(dto.AnalysisSpendingPattern, patterns.Insights, patterns.Summary, patterns.Confidence),
				"budgetHealth":     dto.NewAnalysisResponse(dto.AnalysisBudgetHealth, budget.Insights, budget.Summary, budget.Confidence),
				"savingsPotential": dto.NewAnalysisResponse(dto.AnalysisSavingsPotential, savings.Insights, savings.Summary, savings.Confidence),
				"riskAssessment":   risk,
				"cashFlow":         cashFlow,
			})
		},
	}

	cmd.Flags().IntVar(&days, "days", 180, "Days of mock history to generate")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Mock data seed")
	return cmd
}

// AnalysisResult carries one analysis tuple between goroutines.
type AnalysisResult struct {
	Insights   []models.Insight
	Summary    string
	Confidence float64
}
