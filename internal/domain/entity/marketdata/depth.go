package marketdata

import "time"

// DepthLevel holds one price level of an order book side.
type DepthLevel struct {
	Price  float64 `json:"price"`
	Size   float64 `json:"size"`
	Orders int     `json:"orders,omitempty"`
}

// MarketDepth is the latest order book snapshot for a symbol.
// Only the most recent snapshot is retained; no history is kept.
type MarketDepth struct {
	Symbol    string       `json:"symbol"`
	Timestamp time.Time    `json:"timestamp"`
	Bids      []DepthLevel `json:"bids"`
	Asks      []DepthLevel `json:"asks"`
	Source    string       `json:"source"`
}

// BestBid returns the top bid level, or a zero level when the book is empty.
func (d MarketDepth) BestBid() DepthLevel {
	if len(d.Bids) == 0 {
		return DepthLevel{}
	}
	return d.Bids[0]
}

// BestAsk returns the top ask level, or a zero level when the book is empty.
func (d MarketDepth) BestAsk() DepthLevel {
	if len(d.Asks) == 0 {
		return DepthLevel{}
	}
	return d.Asks[0]
}
