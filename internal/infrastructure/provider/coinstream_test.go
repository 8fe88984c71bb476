package provider

import (
	"testing"

	"main/internal/config"
	instruments "main/internal/domain/entity/instruments"
	marketdata "main/internal/domain/entity/marketdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCoinstreamForTest(pub *capturePublisher) *Coinstream {
	descriptor := instruments.ProviderDescriptor{Name: "coinstream"}
	return NewCoinstream(config.ProviderConfig{}, descriptor, pub, testLogger())
}

func TestCoinstreamFansOutTickerBatch(t *testing.T) {
	pub := &capturePublisher{}
	c := newCoinstreamForTest(pub)

	c.handleMessage([]byte(`{
		"event": "tickers",
		"data": [
			{"symbol": "BTC/USDT", "bid": 50000, "ask": 50010, "last": 50005, "open": 49000, "volume": 120.5, "ts": 1700000000000},
			{"symbol": "ETH/USDT", "bid": 3000, "ask": 3002, "last": 3001, "ts": 1700000000000}
		]
	}`))

	events := pub.Events()
	require.Len(t, events, 2)

	first := events[0]
	require.Equal(t, marketdata.KindQuote, first.Kind)
	require.NotNil(t, first.Quote)
	assert.Equal(t, "BTC/USDT", first.Quote.Symbol)
	assert.Equal(t, "coinstream", first.Quote.Source)
	assert.InDelta(t, 10.0, first.Quote.Spread, 1e-9)
	assert.InDelta(t, 1005.0, first.Quote.Change, 1e-9)
	assert.InDelta(t, 1005.0/49000*100, first.Quote.ChangePercent, 1e-9)

	assert.Equal(t, "ETH/USDT", events[1].Quote.Symbol)
}

func TestCoinstreamDropsUnparsableFrame(t *testing.T) {
	pub := &capturePublisher{}
	c := newCoinstreamForTest(pub)

	c.handleMessage([]byte(`{not json`))
	c.handleMessage([]byte(`{"event": "heartbeat"}`))

	assert.Empty(t, pub.Events())
}

func TestCoinstreamSkipsTickersWithoutSymbol(t *testing.T) {
	pub := &capturePublisher{}
	c := newCoinstreamForTest(pub)

	c.handleMessage([]byte(`{"event": "tickers", "data": [{"bid": 1, "ask": 2}]}`))

	assert.Empty(t, pub.Events())
}

func TestCoinstreamEndpointCarriesAPIKey(t *testing.T) {
	descriptor := instruments.ProviderDescriptor{Name: "coinstream"}
	c := NewCoinstream(config.ProviderConfig{
		URL:    "wss://stream.example.io/v1/ws",
		APIKey: "secret",
	}, descriptor, &capturePublisher{}, testLogger())

	endpoint, err := c.endpoint()
	require.NoError(t, err)
	assert.Equal(t, "wss://stream.example.io/v1/ws?api_key=secret", endpoint)
}
