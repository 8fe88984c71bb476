package distribution

import (
	"fmt"
	"time"

	marketdata "main/internal/domain/entity/marketdata"
)

// Cache key space, partitioned by event kind and symbol.
const (
	quoteKeyPrefix  = "quote:"
	tradeKeyPrefix  = "trade:"
	depthKeyPrefix  = "depth:"
	tradesKeyPrefix = "trades:"
	seriesKeyPrefix = "series:"
	symbolsRegistry = "symbols:active"
)

// QuoteKey is the latest-value cache key for a symbol's quote.
func QuoteKey(symbol string) string { return quoteKeyPrefix + symbol }

// TradeKey is the latest-value cache key for a symbol's trade.
func TradeKey(symbol string) string { return tradeKeyPrefix + symbol }

// DepthKey is the latest-value cache key for a symbol's depth snapshot.
func DepthKey(symbol string) string { return depthKeyPrefix + symbol }

// TradesKey is the bounded recent-trades list key for a symbol.
func TradesKey(symbol string) string { return tradesKeyPrefix + symbol }

// SeriesKey buckets time-series entries by kind, symbol and coarse hour.
func SeriesKey(kind marketdata.Kind, symbol string, ts time.Time) string {
	bucket := ts.UTC().Truncate(time.Hour).Format("2006010215")
	return fmt.Sprintf("%s%s:%s:%s", seriesKeyPrefix, kind, symbol, bucket)
}
