package analytics

import (
	"math"
	"time"

	entity "main/internal/domain/entity/analytics"
	marketdata "main/internal/domain/entity/marketdata"
)

// tradingDaysPerYear annualizes daily return variance.
const tradingDaysPerYear = 252

// returnsSeries converts closes into simple period returns.
func returnsSeries(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	out := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		out = append(out, (closes[i]-closes[i-1])/closes[i-1])
	}
	return out
}

// dailyCloses reduces a chronological candle window to the last close of
// each calendar day, so the return series feeding the 252-day annualization
// is daily regardless of the stored timeframe.
func dailyCloses(candles []marketdata.Candle) []float64 {
	var out []float64
	var day time.Time
	for _, c := range candles {
		d := c.Timestamp.Truncate(24 * time.Hour)
		if len(out) == 0 || !d.Equal(day) {
			out = append(out, c.Close)
			day = d
			continue
		}
		out[len(out)-1] = c.Close
	}
	return out
}

// ComputeVolatility derives historical, annualized and intraday volatility
// from a chronological candle window. Historical and annualized figures run
// over daily returns; intraday averages per-candle ranges. All figures are
// >= 0; short windows yield zeros.
func ComputeVolatility(symbol string, candles []marketdata.Candle) entity.VolatilityMetrics {
	metrics := entity.VolatilityMetrics{Symbol: symbol}

	returns := returnsSeries(dailyCloses(candles))
	if len(returns) > 0 {
		mean := sum(returns) / float64(len(returns))
		std := stddev(returns, mean)
		metrics.Historical = std
		metrics.Annualized = math.Sqrt(std * std * tradingDaysPerYear)
	}

	var intraday float64
	var counted int
	for _, c := range candles {
		if c.Close == 0 {
			continue
		}
		intraday += (c.High - c.Low) / c.Close
		counted++
	}
	if counted > 0 {
		metrics.Intraday = intraday / float64(counted)
	}
	return metrics
}
