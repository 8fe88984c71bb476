package provider

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	marketdata "main/internal/domain/entity/marketdata"
	interfaces "main/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// ErrSessionDown is returned when a control frame is sent while the
// streaming connection is not established.
var ErrSessionDown = errors.New("provider session is not connected")

// adapterCore carries the state every concrete adapter shares: the canonical
// event sink, desired subscriptions for replay, and the last known quote per
// symbol backing the polling fallback.
type adapterCore struct {
	name      string
	publisher interfaces.Publisher
	logger    *logrus.Entry
	subs      *subscriptions

	mu         sync.Mutex
	lastQuotes map[string]marketdata.Quote
}

func newAdapterCore(name string, publisher interfaces.Publisher, logger *logrus.Logger) adapterCore {
	return adapterCore{
		name:       name,
		publisher:  publisher,
		logger:     logger.WithField("provider", name),
		subs:       newSubscriptions(),
		lastQuotes: make(map[string]marketdata.Quote),
	}
}

// emitQuote records and publishes a canonical quote.
func (c *adapterCore) emitQuote(ctx context.Context, q marketdata.Quote) {
	q.Source = c.name
	c.mu.Lock()
	c.lastQuotes[q.Symbol] = q
	c.mu.Unlock()
	c.publisher.Publish(ctx, marketdata.NewQuoteEvent(&q))
}

// emitTrade publishes a canonical trade.
func (c *adapterCore) emitTrade(ctx context.Context, t marketdata.Trade) {
	t.Source = c.name
	c.publisher.Publish(ctx, marketdata.NewTradeEvent(&t))
}

// emitDepth publishes a canonical depth snapshot.
func (c *adapterCore) emitDepth(ctx context.Context, d marketdata.MarketDepth) {
	d.Source = c.name
	c.publisher.Publish(ctx, marketdata.NewDepthEvent(&d))
}

// pollFetch re-stamps the last known quote for the polling fallback.
func (c *adapterCore) pollFetch(_ context.Context, symbol string) (marketdata.Event, bool) {
	c.mu.Lock()
	quote, ok := c.lastQuotes[symbol]
	c.mu.Unlock()
	if !ok {
		return marketdata.Event{}, false
	}
	quote.Timestamp = time.Now().UTC()
	return marketdata.NewQuoteEvent(&quote), true
}

// parseFloat converts string-encoded numerics, defaulting to zero on
// malformed input rather than failing the whole message.
func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// unixMillis converts an epoch-milliseconds stamp, falling back to now.
func unixMillis(ms int64) time.Time {
	if ms <= 0 {
		return time.Now().UTC()
	}
	return time.UnixMilli(ms).UTC()
}
