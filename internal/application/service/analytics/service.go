package analytics

import (
	"context"
	"encoding/json"
	"time"

	"main/internal/application/service/catalog"
	"main/internal/config"
	entity "main/internal/domain/entity/analytics"
	marketdata "main/internal/domain/entity/marketdata"
	interfaces "main/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// Per-kind cache TTLs reflecting how quickly each result goes stale.
const (
	indicatorsTTL  = 5 * time.Minute
	volatilityTTL  = time.Hour
	correlationTTL = 2 * time.Hour
	liquidityTTL   = 30 * time.Second
	sentimentTTL   = 30 * time.Minute
	calendarTTL    = time.Hour
)

// candleSource feeds the engine its rolling candle windows.
type candleSource interface {
	GetLastCandles(ctx context.Context, symbol string, timeframe marketdata.Timeframe, limit int) ([]marketdata.Candle, error)
}

// depthSource serves the latest order book snapshot for liquidity.
type depthSource interface {
	Depth(ctx context.Context, symbol string) *marketdata.MarketDepth
}

// Service is the technical analysis engine. Every tick recomputes each
// derived result wholesale from a bounded historical window and replaces the
// cached value; nothing is patched incrementally.
type Service struct {
	catalog   *catalog.Service
	candles   candleSource
	depths    depthSource
	cache     interfaces.Cache
	related   map[string][]string
	headlines HeadlineSource
	calendar  CalendarSource
	cfg       config.AnalyticsConfig
	logger    *logrus.Entry
}

// NewService wires the analytics engine. The related-symbols table is
// injected configuration; headline and calendar sources may be nil, which
// disables the corresponding ticks.
func NewService(
	cat *catalog.Service,
	candles candleSource,
	depths depthSource,
	cache interfaces.Cache,
	related map[string][]string,
	headlines HeadlineSource,
	calendarSource CalendarSource,
	cfg config.AnalyticsConfig,
	logger *logrus.Logger,
) *Service {
	return &Service{
		catalog:   cat,
		candles:   candles,
		depths:    depths,
		cache:     cache,
		related:   related,
		headlines: headlines,
		calendar:  calendarSource,
		cfg:       cfg,
		logger:    logger.WithField("component", "analytics"),
	}
}

const (
	minutesPerDay = 24 * 60
	// maxWindowCandles caps one fetch at 30 days of minute candles.
	maxWindowCandles = 30 * minutesPerDay
)

// windowLimit bounds the candle window fetched per symbol per tick,
// expressed in minute candles to match the stored timeframe.
func (s *Service) windowLimit() int {
	days := s.cfg.WindowDays
	if days <= 0 {
		days = 30
	}
	limit := days * minutesPerDay
	if limit > maxWindowCandles {
		limit = maxWindowCandles
	}
	return limit
}

// IndicatorTick recomputes indicators, volatility, correlation, liquidity,
// patterns, levels, anomalies and the forecast for the bounded working set.
// Per-symbol failures are logged and skipped so one bad window never stalls
// the rest of the set.
func (s *Service) IndicatorTick(ctx context.Context) {
	now := time.Now().UTC()
	windows := make(map[string][]marketdata.Candle)

	for _, symbol := range s.catalog.WorkingSet(s.cfg.SymbolLimit) {
		candles, err := s.candles.GetLastCandles(ctx, symbol, marketdata.Timeframe1m, s.windowLimit())
		if err != nil {
			s.logger.WithError(err).WithField("symbol", symbol).Warn("candle window fetch failed")
			continue
		}
		windows[symbol] = candles
		if len(candles) == 0 {
			continue
		}
		closes := closeSeries(candles)

		indicators := ComputeIndicators(symbol, candles)
		indicators.Timestamp = now
		s.store(ctx, IndicatorsKey(symbol), indicators, indicatorsTTL)

		volatility := ComputeVolatility(symbol, candles)
		volatility.Timestamp = now
		s.store(ctx, VolatilityKey(symbol), volatility, volatilityTTL)

		patterns := DetectPatterns(symbol, closes)
		for i := range patterns {
			patterns[i].Timestamp = now
		}
		s.store(ctx, PatternsKey(symbol), patterns, indicatorsTTL)

		levels := ExtractLevels(symbol, closes)
		levels.Timestamp = now
		s.store(ctx, LevelsKey(symbol), levels, indicatorsTTL)

		anomalies := DetectAnomalies(symbol, closes)
		anomalies.Timestamp = now
		s.store(ctx, AnomalyKey(symbol), anomalies, indicatorsTTL)

		forecast := ComputeForecast(symbol, closes, defaultForecastHorizon)
		forecast.Timestamp = now
		s.store(ctx, ForecastKey(symbol), forecast, indicatorsTTL)

		if s.depths != nil {
			if depth := s.depths.Depth(ctx, symbol); depth != nil {
				liquidity := ComputeLiquidity(depth)
				s.store(ctx, LiquidityKey(symbol), liquidity, liquidityTTL)
			}
		}
	}

	s.correlate(ctx, now, windows)
}

// correlate computes pairwise Pearson correlations between each processed
// symbol and its configured related symbols, reusing windows already fetched
// this tick and fetching the remainder on demand.
func (s *Service) correlate(ctx context.Context, now time.Time, windows map[string][]marketdata.Candle) {
	returnsFor := func(symbol string) []float64 {
		candles, ok := windows[symbol]
		if !ok {
			fetched, err := s.candles.GetLastCandles(ctx, symbol, marketdata.Timeframe1m, s.windowLimit())
			if err != nil {
				s.logger.WithError(err).WithField("symbol", symbol).Warn("correlation window fetch failed")
				return nil
			}
			windows[symbol] = fetched
			candles = fetched
		}
		return returnsSeries(closeSeries(candles))
	}

	for symbol := range windows {
		peers := s.related[symbol]
		if len(peers) == 0 {
			continue
		}
		base := returnsFor(symbol)
		if len(base) == 0 {
			continue
		}
		data := entity.CorrelationData{
			Symbol:    symbol,
			Timestamp: now,
			Pairs:     make(map[string]float64, len(peers)),
		}
		for _, peer := range peers {
			other := returnsFor(peer)
			if len(other) == 0 {
				continue
			}
			data.Pairs[peer] = Pearson(base, other)
		}
		if len(data.Pairs) > 0 {
			s.store(ctx, CorrelationKey(symbol), data, correlationTTL)
		}
	}
}

// SentimentTick scores fresh headlines for the working set.
func (s *Service) SentimentTick(ctx context.Context) {
	if s.headlines == nil {
		return
	}
	now := time.Now().UTC()
	for _, symbol := range s.catalog.WorkingSet(s.cfg.SymbolLimit) {
		headlines, err := s.headlines.Headlines(ctx, symbol)
		if err != nil {
			s.logger.WithError(err).WithField("symbol", symbol).Warn("headline fetch failed")
			continue
		}
		score := ScoreHeadlines(symbol, headlines)
		score.Timestamp = now
		s.store(ctx, SentimentKey(symbol), score, sentimentTTL)
	}
}

// EconomicTick refreshes the shared economic calendar.
func (s *Service) EconomicTick(ctx context.Context) {
	if s.calendar == nil {
		return
	}
	events, err := s.calendar.Events(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("economic calendar fetch failed")
		return
	}
	s.store(ctx, CalendarKey(), events, calendarTTL)
}

func (s *Service) store(ctx context.Context, key string, value any, ttl time.Duration) {
	payload, err := json.Marshal(value)
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("marshal analytics result")
		return
	}
	if err := s.cache.SetWithTTL(ctx, key, payload, ttl); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("analytics cache write failed")
	}
}
