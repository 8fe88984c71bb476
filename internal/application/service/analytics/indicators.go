package analytics

import (
	"math"

	entity "main/internal/domain/entity/analytics"
	marketdata "main/internal/domain/entity/marketdata"
)

// Neutral defaults returned when a window holds too few points. Degenerate
// inputs are a normal condition for freshly subscribed symbols, not errors.
const (
	neutralRSI        = 50.0
	neutralStochastic = 50.0
	neutralWilliamsR  = -50.0
)

// SMA is the arithmetic mean of the last window closes, 0 when fewer than
// window points exist.
func SMA(values []float64, window int) float64 {
	if window <= 0 || len(values) < window {
		return 0
	}
	var sum float64
	for _, v := range values[len(values)-window:] {
		sum += v
	}
	return sum / float64(window)
}

// emaSeries seeds with the SMA of the first window points and applies the
// standard recurrence. The result is aligned to the tail of the input.
func emaSeries(values []float64, window int) []float64 {
	if window <= 0 || len(values) < window {
		return nil
	}
	k := 2.0 / float64(window+1)
	out := make([]float64, 0, len(values)-window+1)
	ema := SMA(values[:window], window)
	out = append(out, ema)
	for _, v := range values[window:] {
		ema = v*k + ema*(1-k)
		out = append(out, ema)
	}
	return out
}

// EMA is the final value of the exponential moving average, 0 when fewer
// than window points exist.
func EMA(values []float64, window int) float64 {
	series := emaSeries(values, window)
	if len(series) == 0 {
		return 0
	}
	return series[len(series)-1]
}

// RSI computes the relative strength index over the trailing period. A zero
// average loss yields 100; too few points yield the neutral 50.
func RSI(values []float64, period int) float64 {
	if period <= 0 || len(values) < period+1 {
		return neutralRSI
	}
	window := values[len(values)-period-1:]
	var gains, losses float64
	for i := 1; i < len(window); i++ {
		change := window[i] - window[i-1]
		if change >= 0 {
			gains += change
		} else {
			losses -= change
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// MACD returns the macd line, a true rolling 9-period EMA signal line and
// the histogram. The signal EMA runs over the whole retained macd series;
// when fewer than nine macd points exist it degrades to their mean.
func MACD(values []float64) (macd, signal, histogram float64) {
	fast := emaSeries(values, 12)
	slow := emaSeries(values, 26)
	if len(slow) == 0 || len(fast) == 0 {
		return 0, 0, 0
	}
	offset := len(fast) - len(slow)
	series := make([]float64, len(slow))
	for i := range slow {
		series[i] = fast[i+offset] - slow[i]
	}
	macd = series[len(series)-1]

	signalSeries := emaSeries(series, 9)
	if len(signalSeries) > 0 {
		signal = signalSeries[len(signalSeries)-1]
	} else {
		var sum float64
		for _, v := range series {
			sum += v
		}
		signal = sum / float64(len(series))
	}
	return macd, signal, macd - signal
}

// Bollinger returns the upper, middle and lower bands for the window with
// the given deviation multiplier.
func Bollinger(values []float64, window int, k float64) (upper, middle, lower float64) {
	if window <= 0 || len(values) < window {
		return 0, 0, 0
	}
	middle = SMA(values, window)
	std := stddev(values[len(values)-window:], middle)
	return middle + k*std, middle, middle - k*std
}

// ATR is the mean true range over the trailing period.
func ATR(candles []marketdata.Candle, period int) float64 {
	if period <= 0 || len(candles) < period+1 {
		return 0
	}
	window := candles[len(candles)-period-1:]
	var sum float64
	for i := 1; i < len(window); i++ {
		sum += trueRange(window[i], window[i-1].Close)
	}
	return sum / float64(period)
}

// Stochastic is the %K oscillator over the trailing period, neutral 50 when
// the window is short or flat.
func Stochastic(candles []marketdata.Candle, period int) float64 {
	if period <= 0 || len(candles) < period {
		return neutralStochastic
	}
	window := candles[len(candles)-period:]
	high, low := windowExtremes(window)
	if high == low {
		return neutralStochastic
	}
	last := window[len(window)-1].Close
	return (last - low) / (high - low) * 100
}

// WilliamsR is the Williams %R oscillator, neutral -50 on degenerate input.
func WilliamsR(candles []marketdata.Candle, period int) float64 {
	if period <= 0 || len(candles) < period {
		return neutralWilliamsR
	}
	window := candles[len(candles)-period:]
	high, low := windowExtremes(window)
	if high == low {
		return neutralWilliamsR
	}
	last := window[len(window)-1].Close
	return (high - last) / (high - low) * -100
}

// CCI is the commodity channel index over the trailing period, 0 on
// degenerate input.
func CCI(candles []marketdata.Candle, period int) float64 {
	if period <= 0 || len(candles) < period {
		return 0
	}
	window := candles[len(candles)-period:]
	typical := make([]float64, len(window))
	var sum float64
	for i, c := range window {
		typical[i] = (c.High + c.Low + c.Close) / 3
		sum = sum + typical[i]
	}
	mean := sum / float64(len(typical))
	var dev float64
	for _, tp := range typical {
		dev += math.Abs(tp - mean)
	}
	meanDev := dev / float64(len(typical))
	if meanDev == 0 {
		return 0
	}
	return (typical[len(typical)-1] - mean) / (0.015 * meanDev)
}

// ADX is the average directional index with Wilder's directional movement,
// 0 when the window is too short to smooth.
func ADX(candles []marketdata.Candle, period int) float64 {
	if period <= 0 || len(candles) < 2*period+1 {
		return 0
	}
	window := candles[len(candles)-2*period-1:]
	plusDM := make([]float64, 0, len(window)-1)
	minusDM := make([]float64, 0, len(window)-1)
	tr := make([]float64, 0, len(window)-1)
	for i := 1; i < len(window); i++ {
		up := window[i].High - window[i-1].High
		down := window[i-1].Low - window[i].Low
		var pdm, mdm float64
		if up > down && up > 0 {
			pdm = up
		}
		if down > up && down > 0 {
			mdm = down
		}
		plusDM = append(plusDM, pdm)
		minusDM = append(minusDM, mdm)
		tr = append(tr, trueRange(window[i], window[i-1].Close))
	}

	dx := make([]float64, 0, len(tr)-period+1)
	for i := period; i <= len(tr); i++ {
		trSum := sum(tr[i-period : i])
		if trSum == 0 {
			dx = append(dx, 0)
			continue
		}
		plusDI := 100 * sum(plusDM[i-period:i]) / trSum
		minusDI := 100 * sum(minusDM[i-period:i]) / trSum
		if plusDI+minusDI == 0 {
			dx = append(dx, 0)
			continue
		}
		dx = append(dx, 100*math.Abs(plusDI-minusDI)/(plusDI+minusDI))
	}
	if len(dx) < period {
		return 0
	}
	return sum(dx[len(dx)-period:]) / float64(period)
}

// ComputeIndicators evaluates the full indicator set over a chronological
// candle window and labels trend and momentum.
func ComputeIndicators(symbol string, candles []marketdata.Candle) entity.IndicatorSet {
	closes := closeSeries(candles)
	set := entity.IndicatorSet{
		Symbol:     symbol,
		SMA20:      SMA(closes, 20),
		SMA50:      SMA(closes, 50),
		EMA12:      EMA(closes, 12),
		EMA26:      EMA(closes, 26),
		RSI:        RSI(closes, 14),
		ATR:        ATR(candles, 14),
		Stochastic: Stochastic(candles, 14),
		WilliamsR:  WilliamsR(candles, 14),
		CCI:        CCI(candles, 20),
		ADX:        ADX(candles, 14),
	}
	set.MACD, set.MACDSignal, set.MACDHistogram = MACD(closes)
	set.BollingerUpper, set.BollingerMiddle, set.BollingerLower = Bollinger(closes, 20, 2)
	set.Trend = trendLabel(set.SMA20, set.SMA50)
	set.Momentum = momentumLabel(set.RSI)
	return set
}

func trendLabel(sma20, sma50 float64) string {
	switch {
	case sma20 > sma50:
		return entity.TrendBullish
	case sma20 < sma50:
		return entity.TrendBearish
	default:
		return entity.TrendNeutral
	}
}

func momentumLabel(rsi float64) string {
	switch {
	case rsi >= 70:
		return entity.MomentumOverbought
	case rsi <= 30:
		return entity.MomentumOversold
	default:
		return entity.MomentumNeutral
	}
}

func closeSeries(candles []marketdata.Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}

func trueRange(c marketdata.Candle, prevClose float64) float64 {
	tr := c.High - c.Low
	if v := math.Abs(c.High - prevClose); v > tr {
		tr = v
	}
	if v := math.Abs(c.Low - prevClose); v > tr {
		tr = v
	}
	return tr
}

func windowExtremes(candles []marketdata.Candle) (high, low float64) {
	high = candles[0].High
	low = candles[0].Low
	for _, c := range candles[1:] {
		if c.High > high {
			high = c.High
		}
		if c.Low < low {
			low = c.Low
		}
	}
	return high, low
}

func stddev(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var acc float64
	for _, v := range values {
		d := v - mean
		acc += d * d
	}
	return math.Sqrt(acc / float64(len(values)))
}

func sum(values []float64) float64 {
	var acc float64
	for _, v := range values {
		acc += v
	}
	return acc
}
