package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectAnomaliesFlagsSpike(t *testing.T) {
	closes := make([]float64, 0, 20)
	for i := 0; i < 18; i++ {
		closes = append(closes, 100)
	}
	closes = append(closes, 150, 100)

	report := DetectAnomalies("TEST", closes)
	require.Len(t, report.Anomalies, 1)
	assert.InDelta(t, 0.5, report.Anomalies[0], 1e-9)
	assert.Greater(t, report.StdDev, 0.0)
}

func TestDetectAnomaliesQuietSeries(t *testing.T) {
	closes := []float64{100, 100.1, 99.9, 100.05, 99.95, 100}

	report := DetectAnomalies("TEST", closes)
	assert.Empty(t, report.Anomalies)
}

func TestDetectAnomaliesDegenerateInput(t *testing.T) {
	report := DetectAnomalies("TEST", []float64{100})
	assert.Empty(t, report.Anomalies)
	assert.Zero(t, report.StdDev)
}
