package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeastSquaresModel_FitsLinearData(t *testing.T) {
	model := NewLeastSquaresModel()

	// y = 2x + 1
	features := [][]float64{{0}, {1}, {2}, {3}}
	targets := []float64{1, 3, 5, 7}

	require.NoError(t, model.Fit(features, targets))

	assert.InDelta(t, 9, model.Predict([]float64{4}), 1e-3)
	assert.InDelta(t, 1, model.Predict([]float64{0}), 1e-3)
}

func TestLeastSquaresModel_MultipleFeatures(t *testing.T) {
	model := NewLeastSquaresModel()

	// y = x1 + 10*x2
	features := [][]float64{{1, 0}, {2, 1}, {3, 0}, {4, 1}, {5, 2}}
	targets := []float64{1, 12, 3, 14, 25}

	require.NoError(t, model.Fit(features, targets))

	assert.InDelta(t, 26, model.Predict([]float64{6, 2}), 1e-2)
}

func TestLeastSquaresModel_ConstantFeatureColumn(t *testing.T) {
	model := NewLeastSquaresModel()

	// Second column never varies; ridge keeps the system solvable.
	features := [][]float64{{0, 4}, {1, 4}, {2, 4}, {3, 4}}
	targets := []float64{1, 3, 5, 7}

	require.NoError(t, model.Fit(features, targets))
	assert.InDelta(t, 9, model.Predict([]float64{4, 4}), 1e-2)
}

func TestLeastSquaresModel_TooFewSamples(t *testing.T) {
	model := NewLeastSquaresModel()

	err := model.Fit([][]float64{{1}}, []float64{2})
	assert.ErrorIs(t, err, errTooFewSamples)
}

func TestLeastSquaresModel_UnfittedPredictsZero(t *testing.T) {
	model := NewLeastSquaresModel()
	assert.Equal(t, 0.0, model.Predict([]float64{1, 2, 3}))
}
