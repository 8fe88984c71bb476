package http

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"main/internal/application/service/analytics"
	"main/internal/application/service/catalog"
	"main/internal/application/service/distribution"
	"main/internal/application/service/router"
	instruments "main/internal/domain/entity/instruments"
	marketdata "main/internal/domain/entity/marketdata"
	interfaces "main/internal/domain/interfaces"

	"github.com/gin-gonic/gin"
)

const (
	instrumentsBasePath = "/api/v1/instruments"
	marketdataBasePath  = "/api/v1/marketdata"
	analyticsBasePath   = "/api/v1/analytics"
	subscriptionsPath   = "/api/v1/subscriptions"
	providersBasePath   = "/api/v1/providers"

	defaultTradesLimit  = 100
	defaultCandlesLimit = 100
)

var (
	errMissingSymbol    = errors.New("symbol path param required")
	errUnknownAsset     = errors.New("unknown asset_class")
	errNotFound         = errors.New("not found")
	errMissingChannels  = errors.New("at least one channel required")
	errUnknownChannel   = errors.New("unknown channel")
	errUnknownTimeframe = errors.New("unknown timeframe")
	errBadTimeRange     = errors.New("from and to must be RFC3339 timestamps")
)

// seriesReader serves historical trade and candle windows from the durable
// store.
type seriesReader interface {
	GetLastCandles(ctx context.Context, symbol string, timeframe marketdata.Timeframe, limit int) ([]marketdata.Candle, error)
	GetCandlesBetween(ctx context.Context, symbol string, timeframe marketdata.Timeframe, from, to time.Time) ([]marketdata.Candle, error)
	GetLastTrades(ctx context.Context, symbol string, limit int) ([]marketdata.Trade, error)
}

// providerSource exposes the configured provider adapters.
type providerSource interface {
	Get(name string) (interfaces.Provider, bool)
	All() []interfaces.Provider
}

// Handler is the read-side HTTP surface over the cache-backed views plus
// the subscription management endpoints.
type Handler struct {
	engine       *gin.Engine
	catalog      *catalog.Service
	distribution *distribution.Service
	router       *router.Router
	series       seriesReader
	cache        interfaces.Cache
	providers    providerSource
}

// NewHandler builds the gin engine and registers all routes.
func NewHandler(
	cat *catalog.Service,
	dist *distribution.Service,
	rt *router.Router,
	series seriesReader,
	cache interfaces.Cache,
	providers providerSource,
) *Handler {
	engine := gin.New()
	engine.Use(gin.Recovery())

	h := &Handler{
		engine:       engine,
		catalog:      cat,
		distribution: dist,
		router:       rt,
		series:       series,
		cache:        cache,
		providers:    providers,
	}
	h.registerRoutes()
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.engine.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	inst := h.engine.Group(instrumentsBasePath)
	{
		inst.GET("/", h.listInstruments)
		inst.GET("/:symbol", h.getInstrument)
	}

	md := h.engine.Group(marketdataBasePath)
	{
		md.GET("/quotes/:symbol", h.getQuote)
		md.GET("/trades/:symbol", h.getTrades)
		md.GET("/depth/:symbol", h.getDepth)
		md.GET("/candles/:symbol", h.getCandles)
	}

	an := h.engine.Group(analyticsBasePath)
	{
		an.GET("/indicators/:symbol", h.cachedJSON(analytics.IndicatorsKey))
		an.GET("/volatility/:symbol", h.cachedJSON(analytics.VolatilityKey))
		an.GET("/correlation/:symbol", h.cachedJSON(analytics.CorrelationKey))
		an.GET("/liquidity/:symbol", h.cachedJSON(analytics.LiquidityKey))
		an.GET("/patterns/:symbol", h.cachedJSON(analytics.PatternsKey))
		an.GET("/levels/:symbol", h.cachedJSON(analytics.LevelsKey))
		an.GET("/anomalies/:symbol", h.cachedJSON(analytics.AnomalyKey))
		an.GET("/forecast/:symbol", h.cachedJSON(analytics.ForecastKey))
		an.GET("/sentiment/:symbol", h.cachedJSON(analytics.SentimentKey))
		an.GET("/calendar", h.getCalendar)
	}

	subs := h.engine.Group(subscriptionsPath)
	{
		subs.GET("/", h.listSubscriptions)
		subs.POST("/", h.subscribe)
		subs.DELETE("/", h.unsubscribe)
	}

	prov := h.engine.Group(providersBasePath)
	{
		prov.GET("/", h.listProviders)
		prov.GET("/:name", h.getProvider)
	}
}

// listInstruments returns the catalog, optionally filtered by asset_class
// or a free-text search query.
func (h *Handler) listInstruments(c *gin.Context) {
	if query := c.Query("search"); query != "" {
		c.JSON(http.StatusOK, h.catalog.Search(query))
		return
	}
	if raw := c.Query("asset_class"); raw != "" {
		ac, err := instruments.NewAssetClass(raw)
		if err != nil {
			writeError(c, http.StatusBadRequest, errUnknownAsset)
			return
		}
		c.JSON(http.StatusOK, h.catalog.ByAssetClass(ac))
		return
	}
	c.JSON(http.StatusOK, h.catalog.All())
}

func (h *Handler) getInstrument(c *gin.Context) {
	symbol := c.Param("symbol")
	if symbol == "" {
		writeError(c, http.StatusBadRequest, errMissingSymbol)
		return
	}
	inst, err := h.catalog.Get(symbol)
	if err != nil {
		writeError(c, http.StatusNotFound, err)
		return
	}
	c.JSON(http.StatusOK, inst)
}

// getQuote serves the cached latest quote. A cache miss is a 404, never an
// upstream error.
func (h *Handler) getQuote(c *gin.Context) {
	quote := h.distribution.Quote(c.Request.Context(), c.Param("symbol"))
	if quote == nil {
		writeError(c, http.StatusNotFound, errNotFound)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// getTrades serves the cached recent-trades list, falling back to the
// durable store when the cache window is empty.
func (h *Handler) getTrades(c *gin.Context) {
	limit := intQuery(c, "limit", defaultTradesLimit)
	symbol := c.Param("symbol")
	trades := h.distribution.RecentTrades(c.Request.Context(), symbol, limit)
	if len(trades) == 0 {
		if stored, err := h.series.GetLastTrades(c.Request.Context(), symbol, limit); err == nil {
			trades = stored
		}
	}
	c.JSON(http.StatusOK, trades)
}

func (h *Handler) getDepth(c *gin.Context) {
	depth := h.distribution.Depth(c.Request.Context(), c.Param("symbol"))
	if depth == nil {
		writeError(c, http.StatusNotFound, errNotFound)
		return
	}
	c.JSON(http.StatusOK, depth)
}

// getCandles serves the last N candles, or an explicit range when both the
// from and to query params carry RFC3339 timestamps.
func (h *Handler) getCandles(c *gin.Context) {
	timeframe := marketdata.Timeframe(c.DefaultQuery("timeframe", string(marketdata.Timeframe1m)))
	if !timeframe.IsValid() {
		writeError(c, http.StatusBadRequest, errUnknownTimeframe)
		return
	}

	if fromRaw, toRaw := c.Query("from"), c.Query("to"); fromRaw != "" || toRaw != "" {
		from, fromErr := time.Parse(time.RFC3339, fromRaw)
		to, toErr := time.Parse(time.RFC3339, toRaw)
		if fromErr != nil || toErr != nil {
			writeError(c, http.StatusBadRequest, errBadTimeRange)
			return
		}
		candles, err := h.series.GetCandlesBetween(c.Request.Context(), c.Param("symbol"), timeframe, from, to)
		if err != nil {
			writeError(c, http.StatusInternalServerError, err)
			return
		}
		c.JSON(http.StatusOK, candles)
		return
	}

	limit := intQuery(c, "limit", defaultCandlesLimit)
	candles, err := h.series.GetLastCandles(c.Request.Context(), c.Param("symbol"), timeframe, limit)
	if err != nil {
		writeError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, candles)
}

// cachedJSON serves a raw cached analytics document for a symbol.
func (h *Handler) cachedJSON(key func(symbol string) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := h.cache.Get(c.Request.Context(), key(c.Param("symbol")))
		if err != nil {
			writeError(c, http.StatusInternalServerError, err)
			return
		}
		if len(data) == 0 {
			writeError(c, http.StatusNotFound, errNotFound)
			return
		}
		c.Data(http.StatusOK, "application/json", data)
	}
}

func (h *Handler) getCalendar(c *gin.Context) {
	data, err := h.cache.Get(c.Request.Context(), analytics.CalendarKey())
	if err != nil {
		writeError(c, http.StatusInternalServerError, err)
		return
	}
	if len(data) == 0 {
		writeError(c, http.StatusNotFound, errNotFound)
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

// listProviders returns the descriptor of every configured adapter.
func (h *Handler) listProviders(c *gin.Context) {
	providers := h.providers.All()
	out := make([]instruments.ProviderDescriptor, 0, len(providers))
	for _, p := range providers {
		out = append(out, p.Descriptor())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	c.JSON(http.StatusOK, out)
}

func (h *Handler) getProvider(c *gin.Context) {
	p, ok := h.providers.Get(c.Param("name"))
	if !ok {
		writeError(c, http.StatusNotFound, errNotFound)
		return
	}
	c.JSON(http.StatusOK, p.Descriptor())
}

type subscriptionPayload struct {
	Symbol   string   `json:"symbol" binding:"required"`
	Channels []string `json:"channels"`
}

func (p subscriptionPayload) toChannels() ([]interfaces.Channel, error) {
	if len(p.Channels) == 0 {
		return nil, errMissingChannels
	}
	channels := make([]interfaces.Channel, 0, len(p.Channels))
	for _, raw := range p.Channels {
		ch := interfaces.Channel(raw)
		if !ch.IsValid() {
			return nil, errUnknownChannel
		}
		channels = append(channels, ch)
	}
	return channels, nil
}

func (h *Handler) listSubscriptions(c *gin.Context) {
	symbols := h.router.ActiveSymbols()
	out := make(map[string][]interfaces.Channel, len(symbols))
	for _, symbol := range symbols {
		out[symbol] = h.router.ActiveChannels(symbol)
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) subscribe(c *gin.Context) {
	var payload subscriptionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	channels, err := payload.toChannels()
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	if err := h.router.Subscribe(c.Request.Context(), payload.Symbol, channels); err != nil {
		if errors.Is(err, catalog.ErrInstrumentNotFound) {
			writeError(c, http.StatusNotFound, err)
			return
		}
		writeError(c, http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"symbol": payload.Symbol, "channels": payload.Channels})
}

func (h *Handler) unsubscribe(c *gin.Context) {
	var payload subscriptionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	channels, err := payload.toChannels()
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	if err := h.router.Unsubscribe(c.Request.Context(), payload.Symbol, channels); err != nil {
		writeError(c, http.StatusInternalServerError, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func writeError(c *gin.Context, status int, err error) {
	if err == nil {
		status = http.StatusInternalServerError
		err = errors.New("unknown error")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
