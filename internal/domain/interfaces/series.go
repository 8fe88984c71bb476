package interfaces

import (
	"context"
	"time"

	marketdata "main/internal/domain/entity/marketdata"
)

// SeriesRepository is the append-only time-series store for trades and
// candles. Reads feed the technical analysis engine its rolling windows.
type SeriesRepository interface {
	AddTrade(ctx context.Context, trade *marketdata.Trade) error
	AddTrades(ctx context.Context, trades []marketdata.Trade) error
	GetLastTrades(ctx context.Context, symbol string, limit int) ([]marketdata.Trade, error)

	AddCandle(ctx context.Context, candle *marketdata.Candle) error
	AddCandles(ctx context.Context, candles []marketdata.Candle) error
	GetLastCandles(ctx context.Context, symbol string, timeframe marketdata.Timeframe, limit int) ([]marketdata.Candle, error)
	GetCandlesBetween(ctx context.Context, symbol string, timeframe marketdata.Timeframe, from, to time.Time) ([]marketdata.Candle, error)

	Close()
}
