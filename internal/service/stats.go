package service

import (
	"math"

	"github.com/shopspring/decimal"

	"finsight/internal/models"
)

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev is the population standard deviation.
func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// classifyTrend classifies the direction of a series from its pairwise
// deltas: volatile when the deltas vary more than they trend, otherwise
// increasing/decreasing past a small dead zone around zero.
func classifyTrend(values []float64) models.TrendDirection {
	if len(values) < 2 {
		return models.TrendStable
	}

	changes := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		changes = append(changes, values[i]-values[i-1])
	}

	avgChange := mean(changes)
	volatility := stdDev(changes)

	switch {
	case volatility > math.Abs(avgChange):
		return models.TrendVolatile
	case avgChange > 0.01:
		return models.TrendIncreasing
	case avgChange < -0.01:
		return models.TrendDecreasing
	default:
		return models.TrendStable
	}
}

// roundMoney rounds a monetary value to cents.
func roundMoney(v float64) float64 {
	rounded, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return rounded
}
