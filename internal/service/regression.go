package service

import (
	"errors"
	"math"
)

// FlowModel predicts the next month's flow from trailing monthly features.
// Implementations are constructed per call; a fitted model is immutable.
type FlowModel interface {
	Fit(features [][]float64, targets []float64) error
	Predict(features []float64) float64
}

var errTooFewSamples = errors.New("not enough samples to fit model")

// ridge keeps the normal equations solvable when a feature column is
// constant or the history is short.
const ridge = 1e-6

// leastSquaresModel is a least squares regression with feature
// standardization and a small ridge term, solved via the normal equations.
type leastSquaresModel struct {
	weights []float64 // intercept first
	means   []float64
	scales  []float64
}

// NewLeastSquaresModel returns an unfitted linear flow model.
func NewLeastSquaresModel() FlowModel {
	return &leastSquaresModel{}
}

func (m *leastSquaresModel) Fit(features [][]float64, targets []float64) error {
	if len(features) == 0 || len(features) != len(targets) {
		return errTooFewSamples
	}
	dims := len(features[0])
	if len(features) < 2 {
		return errTooFewSamples
	}

	m.means = make([]float64, dims)
	m.scales = make([]float64, dims)
	for j := 0; j < dims; j++ {
		col := make([]float64, len(features))
		for i, row := range features {
			col[i] = row[j]
		}
		m.means[j] = mean(col)
		m.scales[j] = stdDev(col)
		if m.scales[j] == 0 {
			m.scales[j] = 1
		}
	}

	// Normal equations over [1, scaled features].
	n := dims + 1
	xtx := make([][]float64, n)
	for i := range xtx {
		xtx[i] = make([]float64, n)
	}
	xty := make([]float64, n)

	for i, row := range features {
		scaled := make([]float64, n)
		scaled[0] = 1
		for j, v := range row {
			scaled[j+1] = (v - m.means[j]) / m.scales[j]
		}
		for a := 0; a < n; a++ {
			for b := 0; b < n; b++ {
				xtx[a][b] += scaled[a] * scaled[b]
			}
			xty[a] += scaled[a] * targets[i]
		}
	}

	for j := 1; j < n; j++ {
		xtx[j][j] += ridge
	}

	weights, err := solveLinearSystem(xtx, xty)
	if err != nil {
		return err
	}
	m.weights = weights
	return nil
}

func (m *leastSquaresModel) Predict(features []float64) float64 {
	if m.weights == nil {
		return 0
	}
	prediction := m.weights[0]
	for j, v := range features {
		if j+1 >= len(m.weights) {
			break
		}
		prediction += m.weights[j+1] * (v - m.means[j]) / m.scales[j]
	}
	return prediction
}

// solveLinearSystem solves Ax = b by Gaussian elimination with partial
// pivoting. A and b are modified in place.
func solveLinearSystem(a [][]float64, b []float64) ([]float64, error) {
	n := len(a)
	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return nil, errors.New("singular design matrix")
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for row := col + 1; row < n; row++ {
			factor := a[row][col] / a[col][col]
			for k := col; k < n; k++ {
				a[row][k] -= factor * a[col][k]
			}
			b[row] -= factor * b[col]
		}
	}

	x := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		sum := b[row]
		for k := row + 1; k < n; k++ {
			sum -= a[row][k] * x[k]
		}
		x[row] = sum / a[row][row]
	}
	return x, nil
}
