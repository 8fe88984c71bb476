package analytics

import (
	"testing"

	entity "main/internal/domain/entity/analytics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func patternNames(signals []entity.PatternSignal) []string {
	names := make([]string, 0, len(signals))
	for _, s := range signals {
		names = append(names, s.Pattern)
	}
	return names
}

func TestDetectPatternsDoubleTop(t *testing.T) {
	// Two near-equal peaks with a trough between them.
	closes := []float64{96, 94, 92, 96, 98, 100, 98, 96, 92.5, 97, 99, 100.3, 98, 96, 95}

	signals := DetectPatterns("TEST", closes)
	require.NotEmpty(t, signals)
	assert.Contains(t, patternNames(signals), entity.PatternDoubleTop)
	for _, s := range signals {
		if s.Pattern == entity.PatternDoubleTop {
			assert.Equal(t, entity.TrendBearish, s.Direction)
			assert.Equal(t, "TEST", s.Symbol)
		}
	}
}

func TestDetectPatternsAscendingTriangle(t *testing.T) {
	// Flat resistance around 100 with rising lows.
	closes := []float64{90, 88, 86, 92, 96, 100, 97, 94, 91, 95, 98, 100.2, 99, 97, 96}

	signals := DetectPatterns("TEST", closes)
	assert.Contains(t, patternNames(signals), entity.PatternAscendingTriangle)
}

func TestDetectPatternsHeadAndShoulders(t *testing.T) {
	closes := []float64{
		90, 93, 95, 93, 91, // left shoulder at 95
		95, 99, 102, 99, 95, // head at 102
		92, 94.5, 95.2, 93, 90, // right shoulder at 95.2
	}

	signals := DetectPatterns("TEST", closes)
	assert.Contains(t, patternNames(signals), entity.PatternHeadAndShoulders)
}

func TestDetectPatternsShortSeriesIsEmpty(t *testing.T) {
	assert.Empty(t, DetectPatterns("TEST", []float64{100, 101, 102}))
	assert.Empty(t, DetectPatterns("TEST", nil))
}

func TestExtractLevelsCountsNearEqualTouches(t *testing.T) {
	// Oscillation between support near 90 and resistance near 100.
	closes := []float64{95, 92, 90, 93, 97, 100, 97, 93, 90.5, 94, 98, 100.4, 97, 94, 92}

	levels := ExtractLevels("TEST", closes)
	require.Len(t, levels.Support, 1)
	require.Len(t, levels.Resistance, 1)
	assert.InDelta(t, 90.25, levels.Support[0], 0.01)
	assert.InDelta(t, 100.2, levels.Resistance[0], 0.01)
}

func TestExtractLevelsSingleTouchIsNotALevel(t *testing.T) {
	// Each extreme value occurs once, outside any shared tolerance band.
	closes := []float64{100, 80, 120, 60, 140, 40, 160}

	levels := ExtractLevels("TEST", closes)
	assert.Empty(t, levels.Support)
	assert.Empty(t, levels.Resistance)
}
