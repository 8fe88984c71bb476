package distribution

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	marketdata "main/internal/domain/entity/marketdata"
	interfaces "main/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

const (
	latestTTL       = 60 * time.Second
	seriesTTL       = 24 * time.Hour
	recentTradesCap = 1000
)

// Topics names the bus topic per event kind.
type Topics struct {
	Quote string
	Trade string
	Depth string
}

// seriesSink receives entities for the durable time-series store.
type seriesSink interface {
	AddTrade(trade *marketdata.Trade) error
	AddCandle(candle *marketdata.Candle) error
}

// Service is the distribution and cache layer. Publish fans a canonical
// event into the latest-value cache, the event bus and the bounded
// time-series stores; a failure in one leg never blocks the others, and
// the read side never surfaces cache errors to callers.
type Service struct {
	cache  interfaces.Cache
	bus    interfaces.Bus
	series seriesSink
	topics Topics
	logger *logrus.Entry

	mu      sync.Mutex
	candles map[string]*marketdata.Candle
}

// NewService wires the distribution layer. The bus and series sink may be
// nil; the corresponding legs then turn into no-ops.
func NewService(cache interfaces.Cache, bus interfaces.Bus, series seriesSink, topics Topics, logger *logrus.Logger) *Service {
	return &Service{
		cache:   cache,
		bus:     bus,
		series:  series,
		topics:  topics,
		logger:  logger.WithField("component", "distribution"),
		candles: make(map[string]*marketdata.Candle),
	}
}

// Publish distributes one canonical event. All failures are logged and
// swallowed; adapters must never stall on a slow cache or bus.
func (s *Service) Publish(ctx context.Context, event marketdata.Event) {
	symbol := event.Symbol()
	if symbol == "" {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.WithError(err).Warn("marshal event")
		return
	}

	s.writeLatest(ctx, event, symbol, payload)
	s.publishBus(ctx, event, payload)
	s.appendSeries(ctx, event, symbol, payload)
}

func (s *Service) writeLatest(ctx context.Context, event marketdata.Event, symbol string, payload []byte) {
	var key string
	switch event.Kind {
	case marketdata.KindQuote:
		key = QuoteKey(symbol)
	case marketdata.KindTrade:
		key = TradeKey(symbol)
	case marketdata.KindDepth:
		key = DepthKey(symbol)
	default:
		return
	}
	if err := s.cache.SetWithTTL(ctx, key, payload, latestTTL); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("latest-value write failed")
	}
	if err := s.cache.SetAdd(ctx, symbolsRegistry, symbol); err != nil {
		s.logger.WithError(err).Warn("symbol registry write failed")
	}
}

func (s *Service) publishBus(ctx context.Context, event marketdata.Event, payload []byte) {
	if s.bus == nil {
		return
	}
	var topic string
	switch event.Kind {
	case marketdata.KindQuote:
		topic = s.topics.Quote
	case marketdata.KindTrade:
		topic = s.topics.Trade
	case marketdata.KindDepth:
		topic = s.topics.Depth
	default:
		return
	}
	if topic == "" {
		return
	}
	if err := s.bus.Publish(ctx, topic, payload); err != nil {
		s.logger.WithError(err).WithField("topic", topic).Warn("bus publish failed")
	}
}

func (s *Service) appendSeries(ctx context.Context, event marketdata.Event, symbol string, payload []byte) {
	switch event.Kind {
	case marketdata.KindTrade:
		if err := s.cache.ListPush(ctx, TradesKey(symbol), payload, recentTradesCap); err != nil {
			s.logger.WithError(err).Warn("recent trades append failed")
		}
		if s.series != nil && event.Trade != nil {
			if err := s.series.AddTrade(event.Trade); err != nil {
				s.logger.WithError(err).Warn("trade series append failed")
			}
		}
	case marketdata.KindQuote:
		key := SeriesKey(event.Kind, symbol, event.Timestamp())
		if err := s.cache.SetWithTTL(ctx, key, payload, seriesTTL); err != nil {
			s.logger.WithError(err).Warn("series bucket write failed")
		}
		if event.Quote != nil {
			s.aggregateCandle(*event.Quote)
		}
	}
}

// aggregateCandle folds quotes into one-minute OHLCV candles and hands a
// candle to the series sink when its minute closes.
func (s *Service) aggregateCandle(q marketdata.Quote) {
	price := q.Last
	if price == 0 {
		price = q.Mid()
	}
	if price == 0 {
		return
	}
	bucket := q.Timestamp.UTC().Truncate(time.Minute)

	s.mu.Lock()
	current, ok := s.candles[q.Symbol]
	if ok && current.Timestamp.Equal(bucket) {
		if price > current.High {
			current.High = price
		}
		if price < current.Low {
			current.Low = price
		}
		current.Close = price
		current.Volume = q.Volume
		s.mu.Unlock()
		return
	}

	var closed *marketdata.Candle
	if ok {
		closed = current
	}
	s.candles[q.Symbol] = &marketdata.Candle{
		Symbol:    q.Symbol,
		Timestamp: bucket,
		Timeframe: marketdata.Timeframe1m,
		Open:      price,
		High:      price,
		Low:       price,
		Close:     price,
		Volume:    q.Volume,
		Source:    q.Source,
	}
	s.mu.Unlock()

	if closed != nil && s.series != nil {
		if err := s.series.AddCandle(closed); err != nil {
			s.logger.WithError(err).Warn("candle series append failed")
		}
	}
}

// FlushIdle closes and persists in-progress candles whose minute has passed
// without further quotes. Driven by the normalization tick.
func (s *Service) FlushIdle(ctx context.Context) {
	cutoff := time.Now().UTC().Truncate(time.Minute)

	s.mu.Lock()
	var closed []*marketdata.Candle
	for symbol, candle := range s.candles {
		if candle.Timestamp.Before(cutoff) {
			closed = append(closed, candle)
			delete(s.candles, symbol)
		}
	}
	s.mu.Unlock()

	if s.series == nil {
		return
	}
	for _, candle := range closed {
		if err := s.series.AddCandle(candle); err != nil {
			s.logger.WithError(err).Warn("candle series append failed")
		}
		if err := ctx.Err(); err != nil {
			return
		}
	}
}

// Quote returns the cached latest quote, or nil on miss or any read error.
func (s *Service) Quote(ctx context.Context, symbol string) *marketdata.Quote {
	data, err := s.cache.Get(ctx, QuoteKey(symbol))
	if err != nil {
		s.logger.WithError(err).WithField("symbol", symbol).Warn("quote read failed")
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	var event marketdata.Event
	if err := json.Unmarshal(data, &event); err != nil {
		s.logger.WithError(err).Warn("quote entry corrupt")
		return nil
	}
	return event.Quote
}

// RecentTrades returns up to limit cached trades, most recent first. Cache
// errors and misses return an empty slice.
func (s *Service) RecentTrades(ctx context.Context, symbol string, limit int) []marketdata.Trade {
	if limit <= 0 || limit > recentTradesCap {
		limit = recentTradesCap
	}
	entries, err := s.cache.ListRange(ctx, TradesKey(symbol), 0, int64(limit-1))
	if err != nil {
		s.logger.WithError(err).WithField("symbol", symbol).Warn("recent trades read failed")
		return nil
	}
	trades := make([]marketdata.Trade, 0, len(entries))
	for _, entry := range entries {
		var event marketdata.Event
		if err := json.Unmarshal(entry, &event); err != nil || event.Trade == nil {
			continue
		}
		trades = append(trades, *event.Trade)
	}
	return trades
}

// Depth returns the cached latest depth snapshot, or nil on miss or error.
func (s *Service) Depth(ctx context.Context, symbol string) *marketdata.MarketDepth {
	data, err := s.cache.Get(ctx, DepthKey(symbol))
	if err != nil {
		s.logger.WithError(err).WithField("symbol", symbol).Warn("depth read failed")
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	var event marketdata.Event
	if err := json.Unmarshal(data, &event); err != nil {
		s.logger.WithError(err).Warn("depth entry corrupt")
		return nil
	}
	return event.Depth
}

// ActiveSymbols returns the registry of symbols that have published data.
func (s *Service) ActiveSymbols(ctx context.Context) []string {
	symbols, err := s.cache.SetMembers(ctx, symbolsRegistry)
	if err != nil {
		s.logger.WithError(err).Warn("symbol registry read failed")
		return nil
	}
	return symbols
}
