package analytics

import (
	"testing"
	"time"

	marketdata "main/internal/domain/entity/marketdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dailyCandles spaces one candle per calendar day.
func dailyCandles(closes []float64) []marketdata.Candle {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	candles := make([]marketdata.Candle, len(closes))
	for i, c := range closes {
		candles[i] = marketdata.Candle{
			Symbol:    "TEST",
			Timestamp: base.AddDate(0, 0, i),
			Timeframe: marketdata.Timeframe1m,
			Open:      c - 0.5,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    10,
		}
	}
	return candles
}

func TestVolatilityNonNegative(t *testing.T) {
	candles := dailyCandles([]float64{100, 102, 99, 103, 98, 105, 101})

	metrics := ComputeVolatility("TEST", candles)
	assert.GreaterOrEqual(t, metrics.Historical, 0.0)
	assert.GreaterOrEqual(t, metrics.Annualized, 0.0)
	assert.GreaterOrEqual(t, metrics.Intraday, 0.0)
	assert.Greater(t, metrics.Annualized, metrics.Historical)
}

func TestVolatilityConstantSeriesIsZero(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100
	}
	candles := dailyCandles(closes)
	for i := range candles {
		candles[i].High = 100
		candles[i].Low = 100
	}

	metrics := ComputeVolatility("TEST", candles)
	assert.Zero(t, metrics.Historical)
	assert.Zero(t, metrics.Annualized)
	assert.Zero(t, metrics.Intraday)
}

func TestVolatilityShortWindow(t *testing.T) {
	metrics := ComputeVolatility("TEST", nil)
	assert.Zero(t, metrics.Historical)
	assert.Zero(t, metrics.Annualized)
	assert.Zero(t, metrics.Intraday)
}

func TestVolatilityUsesDailyReturns(t *testing.T) {
	// Minute candles within a single day collapse to one daily close, so
	// the annualized figure stays zero while intraday range is measured.
	candles := candlesFromCloses([]float64{100, 104, 97, 103, 99, 102})

	metrics := ComputeVolatility("TEST", candles)
	assert.Zero(t, metrics.Historical)
	assert.Zero(t, metrics.Annualized)
	assert.Greater(t, metrics.Intraday, 0.0)
}

func TestDailyClosesKeepsLastClosePerDay(t *testing.T) {
	day1 := candlesFromCloses([]float64{100, 101, 102})
	day2 := candlesFromCloses([]float64{105, 104})
	for i := range day2 {
		day2[i].Timestamp = day2[i].Timestamp.AddDate(0, 0, 1)
	}

	closes := dailyCloses(append(day1, day2...))
	require.Len(t, closes, 2)
	assert.Equal(t, []float64{102, 104}, closes)
}
