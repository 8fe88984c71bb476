package analytics

import (
	"math"
	"sort"

	entity "main/internal/domain/entity/analytics"
)

const (
	// extremaOrder is how many neighbors on each side a point must dominate
	// to count as a local extreme.
	extremaOrder = 2
	// levelTolerance is the relative band within which two prices count as
	// touches of the same level.
	levelTolerance = 0.01
	// minLevelTouches is the touch count required to report a level.
	minLevelTouches = 2
)

// localMaxima returns indices of local maxima in a close series.
func localMaxima(closes []float64) []int {
	return localExtrema(closes, func(a, b float64) bool { return a > b })
}

// localMinima returns indices of local minima in a close series.
func localMinima(closes []float64) []int {
	return localExtrema(closes, func(a, b float64) bool { return a < b })
}

func localExtrema(closes []float64, dominates func(a, b float64) bool) []int {
	var out []int
	for i := extremaOrder; i < len(closes)-extremaOrder; i++ {
		ok := true
		for d := 1; d <= extremaOrder; d++ {
			if !dominates(closes[i], closes[i-d]) || !dominates(closes[i], closes[i+d]) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, i)
		}
	}
	return out
}

func nearEqual(a, b, tolerance float64) bool {
	if a == 0 && b == 0 {
		return true
	}
	ref := math.Max(math.Abs(a), math.Abs(b))
	return math.Abs(a-b) <= ref*tolerance
}

// DetectPatterns scans a close series for heuristic chart patterns. The
// detectors are approximate signal generators working on local extrema, not
// geometric proofs.
func DetectPatterns(symbol string, closes []float64) []entity.PatternSignal {
	maxima := localMaxima(closes)
	minima := localMinima(closes)
	var signals []entity.PatternSignal

	appendSignal := func(pattern, direction string, confidence float64) {
		signals = append(signals, entity.PatternSignal{
			Symbol:     symbol,
			Pattern:    pattern,
			Direction:  direction,
			Confidence: confidence,
		})
	}

	if len(maxima) >= 2 && len(minima) >= 2 {
		lastMax := closes[maxima[len(maxima)-1]]
		prevMax := closes[maxima[len(maxima)-2]]
		lastMin := closes[minima[len(minima)-1]]
		prevMin := closes[minima[len(minima)-2]]

		flatTop := nearEqual(lastMax, prevMax, levelTolerance)
		flatBottom := nearEqual(lastMin, prevMin, levelTolerance)
		risingBottom := lastMin > prevMin*(1+levelTolerance)
		fallingTop := lastMax < prevMax*(1-levelTolerance)

		if flatTop && risingBottom {
			appendSignal(entity.PatternAscendingTriangle, entity.TrendBullish, 0.6)
		}
		if flatBottom && fallingTop {
			appendSignal(entity.PatternDescendingTriangle, entity.TrendBearish, 0.6)
		}
		if flatTop && !risingBottom && betweenTrough(closes, maxima) {
			appendSignal(entity.PatternDoubleTop, entity.TrendBearish, 0.5)
		}
		if flatBottom && !fallingTop && betweenPeak(closes, minima) {
			appendSignal(entity.PatternDoubleBottom, entity.TrendBullish, 0.5)
		}
	}

	if len(maxima) >= 3 {
		left := closes[maxima[len(maxima)-3]]
		head := closes[maxima[len(maxima)-2]]
		right := closes[maxima[len(maxima)-1]]
		if head > left && head > right && nearEqual(left, right, 2*levelTolerance) {
			appendSignal(entity.PatternHeadAndShoulders, entity.TrendBearish, 0.5)
		}
	}

	return signals
}

// betweenTrough confirms a dip between the last two maxima.
func betweenTrough(closes []float64, maxima []int) bool {
	from, to := maxima[len(maxima)-2], maxima[len(maxima)-1]
	peak := math.Min(closes[from], closes[to])
	for i := from + 1; i < to; i++ {
		if closes[i] < peak*(1-levelTolerance) {
			return true
		}
	}
	return false
}

// betweenPeak confirms a bounce between the last two minima.
func betweenPeak(closes []float64, minima []int) bool {
	from, to := minima[len(minima)-2], minima[len(minima)-1]
	trough := math.Max(closes[from], closes[to])
	for i := from + 1; i < to; i++ {
		if closes[i] > trough*(1+levelTolerance) {
			return true
		}
	}
	return false
}

// ExtractLevels derives support and resistance levels by clustering local
// extrema and counting near-equal touches within a one percent band.
func ExtractLevels(symbol string, closes []float64) entity.PriceLevels {
	levels := entity.PriceLevels{Symbol: symbol}
	levels.Support = clusterLevels(closes, localMinima(closes))
	levels.Resistance = clusterLevels(closes, localMaxima(closes))
	return levels
}

func clusterLevels(closes []float64, extrema []int) []float64 {
	prices := make([]float64, 0, len(extrema))
	for _, i := range extrema {
		prices = append(prices, closes[i])
	}
	sort.Float64s(prices)

	var out []float64
	for i := 0; i < len(prices); {
		j := i + 1
		acc := prices[i]
		for j < len(prices) && nearEqual(prices[j], prices[i], levelTolerance) {
			acc += prices[j]
			j++
		}
		if j-i >= minLevelTouches {
			out = append(out, acc/float64(j-i))
		}
		i = j
	}
	return out
}
