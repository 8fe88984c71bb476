package marketdata

import "time"

// Kind discriminates canonical event payloads. The cache key space is
// partitioned by kind and symbol, so no two kinds collide.
type Kind string

const (
	KindQuote Kind = "quote"
	KindTrade Kind = "trade"
	KindDepth Kind = "depth"
)

// Event is the canonical envelope emitted by provider adapters. Exactly one
// of the payload pointers is set, matching Kind.
type Event struct {
	Kind  Kind         `json:"kind"`
	Quote *Quote       `json:"quote,omitempty"`
	Trade *Trade       `json:"trade,omitempty"`
	Depth *MarketDepth `json:"depth,omitempty"`
}

// Symbol returns the instrument symbol of the wrapped payload.
func (e Event) Symbol() string {
	switch e.Kind {
	case KindQuote:
		if e.Quote != nil {
			return e.Quote.Symbol
		}
	case KindTrade:
		if e.Trade != nil {
			return e.Trade.Symbol
		}
	case KindDepth:
		if e.Depth != nil {
			return e.Depth.Symbol
		}
	}
	return ""
}

// Source returns the origin adapter tag of the wrapped payload.
func (e Event) Source() string {
	switch e.Kind {
	case KindQuote:
		if e.Quote != nil {
			return e.Quote.Source
		}
	case KindTrade:
		if e.Trade != nil {
			return e.Trade.Source
		}
	case KindDepth:
		if e.Depth != nil {
			return e.Depth.Source
		}
	}
	return ""
}

// Timestamp returns the event time of the wrapped payload.
func (e Event) Timestamp() time.Time {
	switch e.Kind {
	case KindQuote:
		if e.Quote != nil {
			return e.Quote.Timestamp
		}
	case KindTrade:
		if e.Trade != nil {
			return e.Trade.Timestamp
		}
	case KindDepth:
		if e.Depth != nil {
			return e.Depth.Timestamp
		}
	}
	return time.Time{}
}

// NewQuoteEvent wraps a quote into a canonical event.
func NewQuoteEvent(q *Quote) Event { return Event{Kind: KindQuote, Quote: q} }

// NewTradeEvent wraps a trade into a canonical event.
func NewTradeEvent(t *Trade) Event { return Event{Kind: KindTrade, Trade: t} }

// NewDepthEvent wraps a depth snapshot into a canonical event.
func NewDepthEvent(d *MarketDepth) Event { return Event{Kind: KindDepth, Depth: d} }
