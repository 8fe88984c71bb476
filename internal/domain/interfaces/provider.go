package interfaces

import (
	"context"

	instruments "main/internal/domain/entity/instruments"
	marketdata "main/internal/domain/entity/marketdata"
)

// Channel names one stream a subscriber can request for an instrument.
type Channel string

const (
	ChannelQuotes Channel = "quotes"
	ChannelTrades Channel = "trades"
	ChannelDepth  Channel = "depth"
)

// IsValid reports whether the channel is one of the known stream names.
func (c Channel) IsValid() bool {
	switch c {
	case ChannelQuotes, ChannelTrades, ChannelDepth:
		return true
	}
	return false
}

// Publisher accepts canonical events from provider adapters.
type Publisher interface {
	Publish(ctx context.Context, event marketdata.Event)
}

// Provider owns one streaming session to one external market data source and
// translates its wire format into canonical events.
type Provider interface {
	// Name returns the provider identifier used as the event source tag.
	Name() string
	// Descriptor returns the static source descriptor.
	Descriptor() instruments.ProviderDescriptor
	// Connect establishes the streaming session. It returns immediately; the
	// session connects and reconnects in the background.
	Connect(ctx context.Context) error
	// Subscribe requests the given channels for a symbol, degrading to a
	// polling fallback when the session is unavailable.
	Subscribe(ctx context.Context, symbol string, channels []Channel) error
	// Unsubscribe removes channels for a symbol; unknown subscriptions are a
	// no-op.
	Unsubscribe(ctx context.Context, symbol string, channels []Channel) error
	// TestConnectivity performs a bounded synchronous health check. This is
	// the only provider call that surfaces transport errors to its caller.
	TestConnectivity(ctx context.Context) error
	// Close tears the session down.
	Close() error
}
