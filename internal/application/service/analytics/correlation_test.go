package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPearsonSelfCorrelationIsOne(t *testing.T) {
	x := []float64{0.01, -0.02, 0.03, 0.005, -0.01, 0.02}
	assert.InDelta(t, 1.0, Pearson(x, x), 1e-9)
}

func TestPearsonIsSymmetric(t *testing.T) {
	x := []float64{0.01, -0.02, 0.03, 0.005, -0.01}
	y := []float64{-0.005, 0.01, -0.02, 0.015, 0.002}
	assert.InDelta(t, Pearson(x, y), Pearson(y, x), 1e-12)
}

func TestPearsonPerfectInverse(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{5, 4, 3, 2, 1}
	assert.InDelta(t, -1.0, Pearson(x, y), 1e-9)
}

func TestPearsonTruncatesToCommonLength(t *testing.T) {
	long := []float64{99, -7, 1, 2, 3, 4, 5}
	short := []float64{1, 2, 3, 4, 5}

	// Only the most recent five points of the longer series count.
	assert.InDelta(t, 1.0, Pearson(long, short), 1e-9)
}

func TestPearsonDegenerateInputs(t *testing.T) {
	assert.Zero(t, Pearson(nil, nil))
	assert.Zero(t, Pearson([]float64{1}, []float64{1}))
	assert.Zero(t, Pearson([]float64{2, 2, 2}, []float64{1, 2, 3}))
}
