package analytics

import (
	entity "main/internal/domain/entity/analytics"
	marketdata "main/internal/domain/entity/marketdata"
)

// ComputeLiquidity summarizes an order book snapshot into spread and
// notional depth figures. An empty book yields zeroed metrics.
func ComputeLiquidity(depth *marketdata.MarketDepth) entity.LiquidityMetrics {
	metrics := entity.LiquidityMetrics{}
	if depth == nil {
		return metrics
	}
	metrics.Symbol = depth.Symbol
	metrics.Timestamp = depth.Timestamp

	bid := depth.BestBid()
	ask := depth.BestAsk()
	if bid.Price > 0 && ask.Price > 0 {
		metrics.Spread = ask.Price - bid.Price
		mid := (ask.Price + bid.Price) / 2
		if mid > 0 {
			metrics.SpreadPercent = metrics.Spread / mid * 100
		}
	}

	for _, level := range depth.Bids {
		metrics.BidValue += level.Price * level.Size
	}
	for _, level := range depth.Asks {
		metrics.AskValue += level.Price * level.Size
	}
	if total := metrics.BidValue + metrics.AskValue; total > 0 {
		metrics.Imbalance = (metrics.BidValue - metrics.AskValue) / total
	}
	return metrics
}
