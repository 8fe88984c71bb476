package analytics

import (
	"testing"

	marketdata "main/internal/domain/entity/marketdata"

	"github.com/stretchr/testify/assert"
)

func TestComputeLiquidity(t *testing.T) {
	depth := &marketdata.MarketDepth{
		Symbol: "BTC/USDT",
		Bids: []marketdata.DepthLevel{
			{Price: 50000, Size: 2},
			{Price: 49990, Size: 1},
		},
		Asks: []marketdata.DepthLevel{
			{Price: 50010, Size: 1},
		},
	}

	metrics := ComputeLiquidity(depth)
	assert.Equal(t, "BTC/USDT", metrics.Symbol)
	assert.InDelta(t, 10.0, metrics.Spread, 1e-9)
	assert.InDelta(t, 2*50000+49990, metrics.BidValue, 1e-9)
	assert.InDelta(t, 50010.0, metrics.AskValue, 1e-9)
	assert.Greater(t, metrics.Imbalance, 0.0)
}

func TestComputeLiquidityEmptyBook(t *testing.T) {
	metrics := ComputeLiquidity(&marketdata.MarketDepth{Symbol: "X"})
	assert.Zero(t, metrics.Spread)
	assert.Zero(t, metrics.Imbalance)

	assert.Zero(t, ComputeLiquidity(nil).BidValue)
}
