package analytics

import entity "main/internal/domain/entity/analytics"

// defaultForecastHorizon is how many future points the trend is extended.
const defaultForecastHorizon = 5

// ComputeForecast fits a least-squares line to the close series and
// extrapolates horizon points ahead. Fewer than two points yield an empty
// forecast.
func ComputeForecast(symbol string, closes []float64, horizon int) entity.Forecast {
	if horizon <= 0 {
		horizon = defaultForecastHorizon
	}
	forecast := entity.Forecast{Symbol: symbol, Horizon: horizon}
	n := len(closes)
	if n < 2 {
		return forecast
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range closes {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return forecast
	}
	slope := (fn*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / fn

	forecast.Slope = slope
	forecast.Values = make([]float64, 0, horizon)
	for i := 1; i <= horizon; i++ {
		x := float64(n - 1 + i)
		forecast.Values = append(forecast.Values, intercept+slope*x)
	}
	return forecast
}
