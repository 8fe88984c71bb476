package marketdata

import (
	"time"

	"github.com/google/uuid"
)

// TradeSide represents BUY/SELL direction derived from the incoming stream.
type TradeSide string

const (
	TradeSideBuy  TradeSide = "buy"
	TradeSideSell TradeSide = "sell"
)

// Trade models a single executed trade reported by an external source.
type Trade struct {
	ID        uuid.UUID `json:"id"`
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Size      float64   `json:"size"`
	Side      TradeSide `json:"side"`
	TradeID   string    `json:"trade_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
}
