package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"main/internal/application/service/catalog"
	"main/internal/application/service/distribution"
	instruments "main/internal/domain/entity/instruments"
	marketdata "main/internal/domain/entity/marketdata"
	interfaces "main/internal/domain/interfaces"
	"main/internal/infrastructure/provider"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// nilCache is an always-empty cache.
type nilCache struct{}

func (nilCache) Get(context.Context, string) ([]byte, error) { return nil, nil }

func (nilCache) SetWithTTL(context.Context, string, []byte, time.Duration) error { return nil }

func (nilCache) ListPush(context.Context, string, []byte, int64) error { return nil }

func (nilCache) ListRange(context.Context, string, int64, int64) ([][]byte, error) {
	return nil, nil
}

func (nilCache) SetAdd(context.Context, string, string) error { return nil }

func (nilCache) SetMembers(context.Context, string) ([]string, error) { return nil, nil }

func (nilCache) Close() error { return nil }

// stubProvider carries a descriptor and nothing else.
type stubProvider struct {
	descriptor instruments.ProviderDescriptor
}

func (p *stubProvider) Name() string { return p.descriptor.Name }

func (p *stubProvider) Descriptor() instruments.ProviderDescriptor { return p.descriptor }

func (p *stubProvider) Connect(context.Context) error { return nil }

func (p *stubProvider) TestConnectivity(context.Context) error { return nil }

func (p *stubProvider) Subscribe(context.Context, string, []interfaces.Channel) error { return nil }

func (p *stubProvider) Unsubscribe(context.Context, string, []interfaces.Channel) error { return nil }

func (p *stubProvider) Close() error { return nil }

// fakeSeries records the range it was asked for.
type fakeSeries struct {
	lastTrades []marketdata.Trade
	between    []marketdata.Candle

	betweenFrom time.Time
	betweenTo   time.Time
}

func (f *fakeSeries) GetLastCandles(context.Context, string, marketdata.Timeframe, int) ([]marketdata.Candle, error) {
	return nil, nil
}

func (f *fakeSeries) GetCandlesBetween(_ context.Context, _ string, _ marketdata.Timeframe, from, to time.Time) ([]marketdata.Candle, error) {
	f.betweenFrom = from
	f.betweenTo = to
	return f.between, nil
}

func (f *fakeSeries) GetLastTrades(context.Context, string, int) ([]marketdata.Trade, error) {
	return f.lastTrades, nil
}

func newHandlerForTest(t *testing.T, series *fakeSeries, providers ...*stubProvider) *Handler {
	t.Helper()
	registry := provider.NewRegistry()
	for _, p := range providers {
		require.NoError(t, registry.Register(p))
	}
	cat := catalog.NewService(nil, instruments.SeedCatalog(), quietLogger())
	require.NoError(t, cat.Load(context.Background()))
	dist := distribution.NewService(nilCache{}, nil, nil, distribution.Topics{}, quietLogger())
	return NewHandler(cat, dist, nil, series, nilCache{}, registry)
}

func doRequest(h *Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	h.ServeHTTP(rec, req)
	return rec
}

func TestListProvidersReturnsSortedDescriptors(t *testing.T) {
	h := newHandlerForTest(t, &fakeSeries{},
		&stubProvider{descriptor: instruments.ProviderDescriptor{Name: "equitylink", AssetClass: []instruments.AssetClass{instruments.AssetClassStock}, Priority: 1}},
		&stubProvider{descriptor: instruments.ProviderDescriptor{Name: "coinstream", AssetClass: []instruments.AssetClass{instruments.AssetClassCrypto}, Priority: 1}},
	)

	rec := doRequest(h, http.MethodGet, "/api/v1/providers/")
	require.Equal(t, http.StatusOK, rec.Code)

	var descriptors []instruments.ProviderDescriptor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &descriptors))
	require.Len(t, descriptors, 2)
	assert.Equal(t, "coinstream", descriptors[0].Name)
	assert.Equal(t, "equitylink", descriptors[1].Name)
}

func TestGetProviderByName(t *testing.T) {
	h := newHandlerForTest(t, &fakeSeries{},
		&stubProvider{descriptor: instruments.ProviderDescriptor{Name: "coinstream", AssetClass: []instruments.AssetClass{instruments.AssetClassCrypto}, Priority: 1}},
	)

	rec := doRequest(h, http.MethodGet, "/api/v1/providers/coinstream")
	require.Equal(t, http.StatusOK, rec.Code)

	var descriptor instruments.ProviderDescriptor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &descriptor))
	assert.Equal(t, "coinstream", descriptor.Name)

	assert.Equal(t, http.StatusNotFound, doRequest(h, http.MethodGet, "/api/v1/providers/nope").Code)
}

func TestCandlesRangeQueryReadsStore(t *testing.T) {
	series := &fakeSeries{between: []marketdata.Candle{{Symbol: "BTCUSD", Close: 50000}}}
	h := newHandlerForTest(t, series)

	rec := doRequest(h, http.MethodGet,
		"/api/v1/marketdata/candles/BTCUSD?from=2026-08-01T00:00:00Z&to=2026-08-02T00:00:00Z")
	require.Equal(t, http.StatusOK, rec.Code)

	var candles []marketdata.Candle
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &candles))
	require.Len(t, candles, 1)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), series.betweenFrom)
	assert.Equal(t, time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC), series.betweenTo)
}

func TestCandlesRangeQueryRejectsBadTimestamps(t *testing.T) {
	h := newHandlerForTest(t, &fakeSeries{})

	rec := doRequest(h, http.MethodGet, "/api/v1/marketdata/candles/BTCUSD?from=yesterday&to=now")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTradesFallBackToStoreWhenCacheIsEmpty(t *testing.T) {
	series := &fakeSeries{lastTrades: []marketdata.Trade{{Symbol: "BTCUSD", Price: 50005, Size: 0.5}}}
	h := newHandlerForTest(t, series)

	rec := doRequest(h, http.MethodGet, "/api/v1/marketdata/trades/BTCUSD")
	require.Equal(t, http.StatusOK, rec.Code)

	var trades []marketdata.Trade
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trades))
	require.Len(t, trades, 1)
	assert.Equal(t, 50005.0, trades[0].Price)
}
