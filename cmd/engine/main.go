package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"main/internal/application/service/analytics"
	"main/internal/application/service/catalog"
	"main/internal/application/service/distribution"
	"main/internal/application/service/router"
	"main/internal/application/service/scheduler"
	"main/internal/config"
	instruments "main/internal/domain/entity/instruments"
	interfaces "main/internal/domain/interfaces"
	"main/internal/infrastructure/broker"
	"main/internal/infrastructure/cache"
	"main/internal/infrastructure/provider"
	"main/internal/infrastructure/timeseries"
	infrahttp "main/internal/interfaces/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	batchSize    = 100
	batchTimeout = 2 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	redisCache, err := cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisCache.Close()

	seriesRepo, err := timeseries.NewRepository(ctx, cfg.Postgres.DSN)
	if err != nil {
		logger.Fatalf("failed to init series repository: %v", err)
	}
	defer seriesRepo.Close()

	bus, err := broker.NewPublisher(cfg.Rabbit, logger)
	if err != nil {
		logger.Fatalf("failed to init event bus: %v", err)
	}
	defer bus.Close()

	batch := timeseries.NewBatchWriter(timeseries.BatchConfig{
		Size:    batchSize,
		Timeout: batchTimeout,
	}, seriesRepo, logger)
	batch.Run(ctx)

	catalogService := catalog.NewService(redisCache, instruments.SeedCatalog(), logger)
	if err := catalogService.Load(ctx); err != nil {
		logger.Fatalf("failed to load instrument catalog: %v", err)
	}

	dist := distribution.NewService(redisCache, bus, batch, distribution.Topics{
		Quote: cfg.Rabbit.QuoteExchange,
		Trade: cfg.Rabbit.TradeExchange,
		Depth: cfg.Rabbit.DepthExchange,
	}, logger)

	registry := provider.NewRegistry()
	descriptors := descriptorIndex(instruments.DefaultProviders())

	adapters := []interfaces.Provider{
		provider.NewCoinstream(cfg.Providers.Coinstream, descriptors["coinstream"], dist, logger),
		provider.NewTradepulse(cfg.Providers.Tradepulse, descriptors["tradepulse"], dist, logger),
		provider.NewEquitylink(cfg.Providers.Equitylink, descriptors["equitylink"], dist, logger),
		provider.NewFxgateway(cfg.Providers.Fxgateway, descriptors["fxgateway"], dist, logger),
	}
	for _, adapter := range adapters {
		if err := registry.Register(adapter); err != nil {
			logger.Fatalf("failed to register provider: %v", err)
		}
		if err := adapter.Connect(ctx); err != nil {
			logger.WithError(err).WithField("provider", adapter.Name()).Warn("provider connect failed")
		}
	}
	defer func() {
		for _, adapter := range registry.All() {
			if err := adapter.Close(); err != nil {
				logger.WithError(err).WithField("provider", adapter.Name()).Warn("provider close failed")
			}
		}
	}()

	subscriptionRouter := router.NewRouter(catalogService, registry, logger)
	subscribeWorkingSet(ctx, subscriptionRouter, catalogService, cfg.Analytics.SymbolLimit, logger)

	var headlines analytics.HeadlineSource
	if cfg.Analytics.NewsURL != "" {
		headlines = analytics.NewHTTPHeadlineSource(cfg.Analytics.NewsURL)
	}
	var calendar analytics.CalendarSource
	if cfg.Analytics.CalendarURL != "" {
		calendar = analytics.NewHTTPCalendarSource(cfg.Analytics.CalendarURL)
	}

	analyticsService := analytics.NewService(
		catalogService,
		seriesRepo,
		dist,
		redisCache,
		instruments.RelatedSymbols(),
		headlines,
		calendar,
		cfg.Analytics,
		logger,
	)

	sched := scheduler.New(logger)
	sched.Register("normalize", cfg.Scheduler.NormalizeInterval, dist.FlushIdle)
	sched.Register("indicators", cfg.Scheduler.IndicatorInterval, analyticsService.IndicatorTick)
	sched.Register("sentiment", cfg.Scheduler.SentimentInterval, analyticsService.SentimentTick)
	sched.Register("economic", cfg.Scheduler.EconomicInterval, analyticsService.EconomicTick)

	handler := infrahttp.NewHandler(catalogService, dist, subscriptionRouter, seriesRepo, redisCache, registry)
	server := &http.Server{
		Addr:    cfg.HTTP.Addr(),
		Handler: handler,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sched.Run(gctx)
		return nil
	})
	g.Go(func() error {
		logger.Infof("HTTP server listening on %s", cfg.HTTP.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	})

	logger.WithFields(logrus.Fields{
		"env":       cfg.Env,
		"providers": len(adapters),
	}).Info("engine started")

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Errorf("engine stopped with error: %v", err)
	}

	flushCtx, flushCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer flushCancel()
	if err := batch.Stop(flushCtx); err != nil {
		logger.Errorf("flush series batches: %v", err)
	}
	logger.Info("engine stopped")
}

// descriptorIndex keys the injected provider table by identifier.
func descriptorIndex(descriptors []instruments.ProviderDescriptor) map[string]instruments.ProviderDescriptor {
	out := make(map[string]instruments.ProviderDescriptor, len(descriptors))
	for _, d := range descriptors {
		out[d.Name] = d
	}
	return out
}

// subscribeWorkingSet activates quote, trade and depth streams for the
// analytics working set. A symbol no provider covers is logged and skipped.
func subscribeWorkingSet(ctx context.Context, rt *router.Router, cat *catalog.Service, limit int, logger *logrus.Logger) {
	channels := []interfaces.Channel{
		interfaces.ChannelQuotes,
		interfaces.ChannelTrades,
		interfaces.ChannelDepth,
	}
	for _, symbol := range cat.WorkingSet(limit) {
		if err := rt.Subscribe(ctx, symbol, channels); err != nil {
			logger.WithError(err).WithField("symbol", symbol).Warn("initial subscribe failed")
		}
	}
}
