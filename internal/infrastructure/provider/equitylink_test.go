package provider

import (
	"context"
	"testing"

	"main/internal/config"
	instruments "main/internal/domain/entity/instruments"
	marketdata "main/internal/domain/entity/marketdata"
	interfaces "main/internal/domain/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEquitylinkForTest(pub *capturePublisher) *Equitylink {
	descriptor := instruments.ProviderDescriptor{Name: "equitylink"}
	return NewEquitylink(config.ProviderConfig{}, descriptor, pub, testLogger())
}

func TestEquitylinkParsesStringNumerics(t *testing.T) {
	pub := &capturePublisher{}
	e := newEquitylinkForTest(pub)

	e.handleMessage([]byte(`{
		"ev": "Q", "sym": "AAPL",
		"bp": "189.90", "ap": "190.10", "lp": "190.00",
		"o": "188.00", "h": "191.00", "l": "187.50", "pc": "188.50",
		"v": "1200000", "t": 1700000000000
	}`))

	events := pub.Events()
	require.Len(t, events, 1)
	quote := events[0].Quote
	require.NotNil(t, quote)
	assert.Equal(t, "AAPL", quote.Symbol)
	assert.InDelta(t, 189.90, quote.Bid, 1e-9)
	assert.InDelta(t, 190.10, quote.Ask, 1e-9)
	assert.InDelta(t, 0.20, quote.Spread, 1e-9)
	assert.InDelta(t, 1.50, quote.Change, 1e-9)
	assert.Equal(t, "equitylink", quote.Source)
}

func TestEquitylinkMalformedNumberParsesToZero(t *testing.T) {
	pub := &capturePublisher{}
	e := newEquitylinkForTest(pub)

	e.handleMessage([]byte(`{"ev": "Q", "sym": "MSFT", "lp": "not-a-number", "bp": "410.5"}`))

	events := pub.Events()
	require.Len(t, events, 1)
	assert.Zero(t, events[0].Quote.Last)
	assert.InDelta(t, 410.5, events[0].Quote.Bid, 1e-9)
}

func TestEquitylinkTradeSideMapping(t *testing.T) {
	pub := &capturePublisher{}
	e := newEquitylinkForTest(pub)

	e.handleMessage([]byte(`{"ev": "T", "sym": "AAPL", "p": "190.00", "s": "100", "side": "S", "i": "t-1"}`))
	e.handleMessage([]byte(`{"ev": "T", "sym": "AAPL", "p": "190.05", "s": "50", "side": "B", "i": "t-2"}`))

	events := pub.Events()
	require.Len(t, events, 2)
	assert.Equal(t, marketdata.TradeSideSell, events[0].Trade.Side)
	assert.Equal(t, marketdata.TradeSideBuy, events[1].Trade.Side)
	assert.Equal(t, "t-1", events[0].Trade.TradeID)
}

func TestEquitylinkIgnoresUnknownEventTags(t *testing.T) {
	pub := &capturePublisher{}
	e := newEquitylinkForTest(pub)

	e.handleMessage([]byte(`{"ev": "status", "message": "connected"}`))

	assert.Empty(t, pub.Events())
}

func TestEquitylinkSecondChannelAddSendsNothing(t *testing.T) {
	pub := &capturePublisher{}
	e := newEquitylinkForTest(pub)
	ctx := context.Background()
	defer e.Close()

	require.NoError(t, e.Subscribe(ctx, "AAPL", []interfaces.Channel{interfaces.ChannelQuotes}))
	require.NoError(t, e.Subscribe(ctx, "AAPL", []interfaces.Channel{interfaces.ChannelTrades}))

	// Both calls succeed while disconnected; the symbol is tracked once.
	assert.Equal(t, []string{"AAPL"}, e.subs.Symbols())
}
