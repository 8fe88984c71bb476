package marketdata

import "time"

// Quote is the canonical normalized quote produced by provider adapters.
// A quote is never mutated after creation, only superseded by a newer one.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Timestamp     time.Time `json:"timestamp"`
	Bid           float64   `json:"bid"`
	Ask           float64   `json:"ask"`
	Last          float64   `json:"last"`
	Open          float64   `json:"open"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Close         float64   `json:"close"`
	Volume        float64   `json:"volume"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	VWAP          float64   `json:"vwap,omitempty"`
	Spread        float64   `json:"spread,omitempty"`
	Source        string    `json:"source"`
}

// Mid returns the bid/ask midpoint, falling back to the last price when
// one side of the book is missing.
func (q Quote) Mid() float64 {
	if q.Bid > 0 && q.Ask > 0 {
		return (q.Bid + q.Ask) / 2
	}
	return q.Last
}
