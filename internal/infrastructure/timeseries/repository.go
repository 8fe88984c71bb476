package timeseries

import (
	"context"
	"errors"
	"fmt"
	"time"

	marketdata "main/internal/domain/entity/marketdata"
	interfaces "main/internal/domain/interfaces"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository is the append-only Postgres store for trades and candles.
type Repository struct {
	pool *pgxpool.Pool
}

var _ interfaces.SeriesRepository = (*Repository)(nil)

// NewRepository opens a pgx pool against the given DSN.
func NewRepository(ctx context.Context, dsn string) (*Repository, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	return &Repository{pool: pool}, nil
}

// Close releases the connection pool.
func (r *Repository) Close() {
	if r == nil || r.pool == nil {
		return
	}
	r.pool.Close()
}

// Trades

const insertTradeQuery = `
	INSERT INTO trades (trade_uid, symbol, price, size, side, trade_id, traded_at, source)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

func (r *Repository) AddTrade(ctx context.Context, trade *marketdata.Trade) error {
	if trade == nil {
		return errors.New("nil trade")
	}
	if trade.ID == uuid.Nil {
		trade.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, insertTradeQuery,
		trade.ID,
		trade.Symbol,
		trade.Price,
		trade.Size,
		trade.Side,
		trade.TradeID,
		trade.Timestamp,
		trade.Source,
	)
	return err
}

func (r *Repository) AddTrades(ctx context.Context, trades []marketdata.Trade) error {
	if len(trades) == 0 {
		return nil
	}
	rows := make([][]interface{}, 0, len(trades))
	for i := range trades {
		if trades[i].ID == uuid.Nil {
			trades[i].ID = uuid.New()
		}
		rows = append(rows, []interface{}{
			trades[i].ID,
			trades[i].Symbol,
			trades[i].Price,
			trades[i].Size,
			trades[i].Side,
			trades[i].TradeID,
			trades[i].Timestamp,
			trades[i].Source,
		})
	}
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"trades"},
		[]string{"trade_uid", "symbol", "price", "size", "side", "trade_id", "traded_at", "source"},
		pgx.CopyFromRows(rows),
	)
	return err
}

func (r *Repository) GetLastTrades(ctx context.Context, symbol string, limit int) ([]marketdata.Trade, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}
	const query = `
		SELECT trade_uid, symbol, price, size, side, trade_id, traded_at, source
		FROM trades
		WHERE symbol=$1
		ORDER BY traded_at DESC
		LIMIT $2`
	rows, err := r.pool.Query(ctx, query, symbol, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []marketdata.Trade
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		trades = append(trades, trade)
	}
	return trades, rows.Err()
}

func scanTrade(row pgx.Row) (marketdata.Trade, error) {
	trade := marketdata.Trade{}
	err := row.Scan(
		&trade.ID,
		&trade.Symbol,
		&trade.Price,
		&trade.Size,
		&trade.Side,
		&trade.TradeID,
		&trade.Timestamp,
		&trade.Source,
	)
	if err != nil {
		return marketdata.Trade{}, err
	}
	return trade, nil
}

// Candles

const insertCandleQuery = `
	INSERT INTO candles (candle_uid, symbol, timeframe, period_start, open, high, low, close, volume, source)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`

func (r *Repository) AddCandle(ctx context.Context, candle *marketdata.Candle) error {
	if candle == nil {
		return errors.New("nil candle")
	}
	if candle.ID == uuid.Nil {
		candle.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, insertCandleQuery,
		candle.ID,
		candle.Symbol,
		candle.Timeframe,
		candle.Timestamp,
		candle.Open,
		candle.High,
		candle.Low,
		candle.Close,
		candle.Volume,
		candle.Source,
	)
	return err
}

func (r *Repository) AddCandles(ctx context.Context, candles []marketdata.Candle) error {
	if len(candles) == 0 {
		return nil
	}
	rows := make([][]interface{}, 0, len(candles))
	for i := range candles {
		if candles[i].ID == uuid.Nil {
			candles[i].ID = uuid.New()
		}
		rows = append(rows, []interface{}{
			candles[i].ID,
			candles[i].Symbol,
			candles[i].Timeframe,
			candles[i].Timestamp,
			candles[i].Open,
			candles[i].High,
			candles[i].Low,
			candles[i].Close,
			candles[i].Volume,
			candles[i].Source,
		})
	}
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"candles"},
		[]string{"candle_uid", "symbol", "timeframe", "period_start", "open", "high", "low", "close", "volume", "source"},
		pgx.CopyFromRows(rows),
	)
	return err
}

func (r *Repository) GetLastCandles(ctx context.Context, symbol string, timeframe marketdata.Timeframe, limit int) ([]marketdata.Candle, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}
	const query = `
		SELECT candle_uid, symbol, timeframe, period_start, open, high, low, close, volume, source
		FROM candles
		WHERE symbol=$1 AND timeframe=$2
		ORDER BY period_start DESC
		LIMIT $3`
	rows, err := r.pool.Query(ctx, query, symbol, timeframe, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candles, err := collectCandles(rows)
	if err != nil {
		return nil, err
	}
	// Reverse into chronological order; indicator windows expect oldest first.
	for i, j := 0, len(candles)-1; i < j; i, j = i+1, j-1 {
		candles[i], candles[j] = candles[j], candles[i]
	}
	return candles, nil
}

func (r *Repository) GetCandlesBetween(ctx context.Context, symbol string, timeframe marketdata.Timeframe, from, to time.Time) ([]marketdata.Candle, error) {
	if from.After(to) {
		from, to = to, from
	}
	const query = `
		SELECT candle_uid, symbol, timeframe, period_start, open, high, low, close, volume, source
		FROM candles
		WHERE symbol=$1 AND timeframe=$2 AND period_start >= $3 AND period_start <= $4
		ORDER BY period_start ASC`
	rows, err := r.pool.Query(ctx, query, symbol, timeframe, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCandles(rows)
}

func collectCandles(rows pgx.Rows) ([]marketdata.Candle, error) {
	var candles []marketdata.Candle
	for rows.Next() {
		candle, err := scanCandle(rows)
		if err != nil {
			return nil, err
		}
		candles = append(candles, candle)
	}
	return candles, rows.Err()
}

func scanCandle(row pgx.Row) (marketdata.Candle, error) {
	candle := marketdata.Candle{}
	err := row.Scan(
		&candle.ID,
		&candle.Symbol,
		&candle.Timeframe,
		&candle.Timestamp,
		&candle.Open,
		&candle.High,
		&candle.Low,
		&candle.Close,
		&candle.Volume,
		&candle.Source,
	)
	if err != nil {
		return marketdata.Candle{}, err
	}
	return candle, nil
}
