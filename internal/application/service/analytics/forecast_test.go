package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecastExtendsLinearTrend(t *testing.T) {
	closes := ascendingSeries(10, 100, 1)

	forecast := ComputeForecast("TEST", closes, 5)
	require.Len(t, forecast.Values, 5)
	assert.InDelta(t, 1.0, forecast.Slope, 1e-9)
	for i, v := range forecast.Values {
		assert.InDelta(t, 110+float64(i), v, 1e-9)
	}
}

func TestForecastFlatSeriesHasZeroSlope(t *testing.T) {
	closes := make([]float64, 10)
	for i := range closes {
		closes[i] = 50
	}

	forecast := ComputeForecast("TEST", closes, 3)
	assert.Zero(t, forecast.Slope)
	for _, v := range forecast.Values {
		assert.InDelta(t, 50.0, v, 1e-9)
	}
}

func TestForecastShortSeriesIsEmpty(t *testing.T) {
	forecast := ComputeForecast("TEST", []float64{100}, 5)
	assert.Empty(t, forecast.Values)
	assert.Equal(t, 5, forecast.Horizon)
}
