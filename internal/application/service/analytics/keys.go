package analytics

// Cache keys for derived analytics, partitioned by kind and symbol.
const (
	indicatorsKeyPrefix  = "indicators:"
	volatilityKeyPrefix  = "volatility:"
	correlationKeyPrefix = "correlation:"
	liquidityKeyPrefix   = "liquidity:"
	patternsKeyPrefix    = "patterns:"
	levelsKeyPrefix      = "levels:"
	anomalyKeyPrefix     = "anomaly:"
	forecastKeyPrefix    = "forecast:"
	sentimentKeyPrefix   = "sentiment:"
	calendarKey          = "economic:calendar"
)

// IndicatorsKey is the cache key for a symbol's indicator set.
func IndicatorsKey(symbol string) string { return indicatorsKeyPrefix + symbol }

// VolatilityKey is the cache key for a symbol's volatility metrics.
func VolatilityKey(symbol string) string { return volatilityKeyPrefix + symbol }

// CorrelationKey is the cache key for a symbol's correlation data.
func CorrelationKey(symbol string) string { return correlationKeyPrefix + symbol }

// LiquidityKey is the cache key for a symbol's liquidity metrics.
func LiquidityKey(symbol string) string { return liquidityKeyPrefix + symbol }

// PatternsKey is the cache key for a symbol's detected patterns.
func PatternsKey(symbol string) string { return patternsKeyPrefix + symbol }

// LevelsKey is the cache key for a symbol's support and resistance levels.
func LevelsKey(symbol string) string { return levelsKeyPrefix + symbol }

// AnomalyKey is the cache key for a symbol's anomaly report.
func AnomalyKey(symbol string) string { return anomalyKeyPrefix + symbol }

// ForecastKey is the cache key for a symbol's trend forecast.
func ForecastKey(symbol string) string { return forecastKeyPrefix + symbol }

// SentimentKey is the cache key for a symbol's sentiment score.
func SentimentKey(symbol string) string { return sentimentKeyPrefix + symbol }

// CalendarKey is the cache key for the shared economic calendar.
func CalendarKey() string { return calendarKey }
