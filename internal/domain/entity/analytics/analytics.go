package analytics

import "time"

// Trend labels for an indicator set.
const (
	TrendBullish = "bullish"
	TrendBearish = "bearish"
	TrendNeutral = "neutral"
)

// Momentum labels derived from RSI bands.
const (
	MomentumOverbought = "overbought"
	MomentumOversold   = "oversold"
	MomentumNeutral    = "neutral"
)

// IndicatorSet holds all technical indicators for one symbol at one instant.
// The set is recomputed and replaced wholesale on every analytics tick.
type IndicatorSet struct {
	Symbol          string    `json:"symbol"`
	Timestamp       time.Time `json:"timestamp"`
	SMA20           float64   `json:"sma_20"`
	SMA50           float64   `json:"sma_50"`
	EMA12           float64   `json:"ema_12"`
	EMA26           float64   `json:"ema_26"`
	RSI             float64   `json:"rsi"`
	MACD            float64   `json:"macd"`
	MACDSignal      float64   `json:"macd_signal"`
	MACDHistogram   float64   `json:"macd_histogram"`
	BollingerUpper  float64   `json:"bollinger_upper"`
	BollingerMiddle float64   `json:"bollinger_middle"`
	BollingerLower  float64   `json:"bollinger_lower"`
	ATR             float64   `json:"atr"`
	Stochastic      float64   `json:"stochastic"`
	WilliamsR       float64   `json:"williams_r"`
	CCI             float64   `json:"cci"`
	ADX             float64   `json:"adx"`
	Trend           string    `json:"trend"`
	Momentum        string    `json:"momentum"`
}

// VolatilityMetrics holds recomputed volatility figures for one symbol.
type VolatilityMetrics struct {
	Symbol     string    `json:"symbol"`
	Timestamp  time.Time `json:"timestamp"`
	Historical float64   `json:"historical"`
	Annualized float64   `json:"annualized"`
	Intraday   float64   `json:"intraday"`
}

// CorrelationData holds pairwise Pearson correlations between a symbol and
// its configured related symbols.
type CorrelationData struct {
	Symbol    string             `json:"symbol"`
	Timestamp time.Time          `json:"timestamp"`
	Pairs     map[string]float64 `json:"pairs"`
}

// LiquidityMetrics summarizes the latest order book snapshot.
type LiquidityMetrics struct {
	Symbol        string    `json:"symbol"`
	Timestamp     time.Time `json:"timestamp"`
	Spread        float64   `json:"spread"`
	SpreadPercent float64   `json:"spread_percent"`
	BidValue      float64   `json:"bid_value"`
	AskValue      float64   `json:"ask_value"`
	Imbalance     float64   `json:"imbalance"`
}

// PatternSignal flags one detected chart pattern. Patterns are heuristic
// signal generators, not exact geometric proofs.
type PatternSignal struct {
	Symbol     string    `json:"symbol"`
	Pattern    string    `json:"pattern"`
	Direction  string    `json:"direction"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}

// Detected pattern names.
const (
	PatternAscendingTriangle  = "ascending_triangle"
	PatternDescendingTriangle = "descending_triangle"
	PatternHeadAndShoulders   = "head_and_shoulders"
	PatternDoubleTop          = "double_top"
	PatternDoubleBottom       = "double_bottom"
)

// PriceLevels lists support and resistance levels extracted from recent
// price action.
type PriceLevels struct {
	Symbol     string    `json:"symbol"`
	Timestamp  time.Time `json:"timestamp"`
	Support    []float64 `json:"support"`
	Resistance []float64 `json:"resistance"`
}

// AnomalyReport flags price returns whose z-score exceeds the configured
// threshold.
type AnomalyReport struct {
	Symbol    string    `json:"symbol"`
	Timestamp time.Time `json:"timestamp"`
	Mean      float64   `json:"mean"`
	StdDev    float64   `json:"std_dev"`
	Anomalies []float64 `json:"anomalies"`
}

// Forecast is a least-squares trend extrapolation of the close series.
type Forecast struct {
	Symbol    string    `json:"symbol"`
	Timestamp time.Time `json:"timestamp"`
	Horizon   int       `json:"horizon"`
	Values    []float64 `json:"values"`
	Slope     float64   `json:"slope"`
}

// SentimentScore aggregates keyword-scored headlines for a symbol.
type SentimentScore struct {
	Symbol    string    `json:"symbol"`
	Timestamp time.Time `json:"timestamp"`
	Score     float64   `json:"score"`
	Label     string    `json:"label"`
	Headlines int       `json:"headlines"`
}

// Sentiment labels.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// EconomicEvent is one entry of the slow external economic calendar feed.
type EconomicEvent struct {
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	Currency  string    `json:"currency"`
	Impact    string    `json:"impact"`
	Actual    float64   `json:"actual,omitempty"`
	Forecast  float64   `json:"forecast,omitempty"`
	Previous  float64   `json:"previous,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
