package provider

import (
	"context"
	"encoding/json"
	"fmt"

	"main/internal/config"
	instruments "main/internal/domain/entity/instruments"
	marketdata "main/internal/domain/entity/marketdata"
	interfaces "main/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// Tradepulse streams crypto quotes, trades and depth on separate
// message-type tags, dispatched per frame. A bearer token is sent as the
// first frame after connecting.
type Tradepulse struct {
	adapterCore
	cfg        config.ProviderConfig
	descriptor instruments.ProviderDescriptor
	session    *session
	poller     *poller

	runCtx context.Context
}

var _ interfaces.Provider = (*Tradepulse)(nil)

type tradepulseFrame struct {
	Type    string                `json:"type"`
	Symbol  string                `json:"symbol"`
	Bid     float64               `json:"bid"`
	Ask     float64               `json:"ask"`
	Last    float64               `json:"last"`
	Volume  float64               `json:"volume"`
	Price   float64               `json:"price"`
	Size    float64               `json:"size"`
	Side    string                `json:"side"`
	TradeID string                `json:"id"`
	Bids    []tradepulseBookLevel `json:"bids"`
	Asks    []tradepulseBookLevel `json:"asks"`
	Message string                `json:"message"`
	TS      int64                 `json:"ts"`
}

type tradepulseBookLevel struct {
	Price  float64 `json:"price"`
	Size   float64 `json:"size"`
	Orders int     `json:"orders"`
}

type tradepulseControl struct {
	Type     string   `json:"type"`
	Token    string   `json:"token,omitempty"`
	Symbol   string   `json:"symbol,omitempty"`
	Channels []string `json:"channels,omitempty"`
}

// NewTradepulse builds the adapter; the session is not opened until Connect.
func NewTradepulse(cfg config.ProviderConfig, descriptor instruments.ProviderDescriptor, publisher interfaces.Publisher, logger *logrus.Logger) *Tradepulse {
	t := &Tradepulse{
		adapterCore: newAdapterCore(descriptor.Name, publisher, logger),
		cfg:         cfg,
		descriptor:  descriptor,
	}
	t.poller = newPoller(cfg.PollInterval, t.pollFetch, publisher, t.logger.WithField("mode", "poll"))
	return t
}

func (t *Tradepulse) Name() string { return t.descriptor.Name }

func (t *Tradepulse) Descriptor() instruments.ProviderDescriptor { return t.descriptor }

// Connect starts the background streaming session.
func (t *Tradepulse) Connect(ctx context.Context) error {
	if !t.cfg.Enabled() || t.cfg.Token == "" {
		t.logger.Warn("missing endpoint or token, adapter stays disconnected")
		return nil
	}
	t.runCtx = ctx
	t.session = newSession(sessionConfig{
		Name:      t.Name(),
		URL:       t.cfg.URL,
		Backoff:   reconnectPolicy(t.cfg.ReconnectDelay),
		OnConnect: t.authenticate,
		OnMessage: t.handleMessage,
		Logger:    t.logger,
	})
	t.session.Start(ctx)
	return nil
}

// authenticate sends the auth frame and replays desired subscriptions.
func (t *Tradepulse) authenticate(s *session) error {
	if err := s.SendJSON(tradepulseControl{Type: "auth", Token: t.cfg.Token}); err != nil {
		return err
	}
	t.poller.Stop()
	for symbol, channels := range t.subs.Snapshot() {
		err := s.SendJSON(tradepulseControl{
			Type:     "subscribe",
			Symbol:   symbol,
			Channels: tradepulseChannels(channels),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Subscribe forwards a subscribe frame for the newly desired channels.
func (t *Tradepulse) Subscribe(ctx context.Context, symbol string, channels []interfaces.Channel) error {
	added := t.subs.Add(symbol, channels)
	if len(added) == 0 {
		return nil
	}
	if t.session == nil || !t.session.Connected() {
		t.poller.Add(ctx, symbol)
		return nil
	}
	return t.session.SendJSON(tradepulseControl{
		Type:     "subscribe",
		Symbol:   symbol,
		Channels: tradepulseChannels(added),
	})
}

// Unsubscribe is idempotent; unknown subscriptions are a no-op.
func (t *Tradepulse) Unsubscribe(_ context.Context, symbol string, channels []interfaces.Channel) error {
	removed := t.subs.Remove(symbol, channels)
	if len(removed) == 0 {
		return nil
	}
	t.poller.Remove(symbol)
	if t.session == nil || !t.session.Connected() {
		return nil
	}
	return t.session.SendJSON(tradepulseControl{
		Type:     "unsubscribe",
		Symbol:   symbol,
		Channels: tradepulseChannels(removed),
	})
}

// TestConnectivity dials the endpoint once with a bounded timeout.
func (t *Tradepulse) TestConnectivity(ctx context.Context) error {
	if !t.cfg.Enabled() || t.cfg.Token == "" {
		return fmt.Errorf("tradepulse is not configured")
	}
	return probeEndpoint(ctx, t.cfg.URL, nil)
}

// Close tears down the session and the polling fallback.
func (t *Tradepulse) Close() error {
	t.poller.Stop()
	if t.session != nil {
		t.session.Close()
	}
	return nil
}

// handleMessage dispatches one frame by its type tag. Malformed frames are
// logged and dropped; unknown tags are ignored.
func (t *Tradepulse) handleMessage(raw []byte) {
	var frame tradepulseFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		t.logger.WithError(err).Warn("drop unparsable frame")
		return
	}
	ctx := t.runCtx
	if ctx == nil {
		ctx = context.Background()
	}
	switch frame.Type {
	case "quote":
		t.handleQuote(ctx, frame)
	case "trade":
		t.handleTrade(ctx, frame)
	case "depth":
		t.handleDepth(ctx, frame)
	case "error":
		t.logger.WithField("message", frame.Message).Warn("source reported error")
	}
}

func (t *Tradepulse) handleQuote(ctx context.Context, frame tradepulseFrame) {
	if frame.Symbol == "" {
		return
	}
	quote := marketdata.Quote{
		Symbol:    frame.Symbol,
		Timestamp: unixMillis(frame.TS),
		Bid:       frame.Bid,
		Ask:       frame.Ask,
		Last:      frame.Last,
		Volume:    frame.Volume,
	}
	if frame.Bid > 0 && frame.Ask > 0 {
		quote.Spread = frame.Ask - frame.Bid
		if quote.Last == 0 {
			quote.Last = (frame.Bid + frame.Ask) / 2
		}
	}
	t.emitQuote(ctx, quote)
}

func (t *Tradepulse) handleTrade(ctx context.Context, frame tradepulseFrame) {
	if frame.Symbol == "" {
		return
	}
	side := marketdata.TradeSideBuy
	if frame.Side == "sell" {
		side = marketdata.TradeSideSell
	}
	t.emitTrade(ctx, marketdata.Trade{
		Symbol:    frame.Symbol,
		Price:     frame.Price,
		Size:      frame.Size,
		Side:      side,
		TradeID:   frame.TradeID,
		Timestamp: unixMillis(frame.TS),
	})
}

func (t *Tradepulse) handleDepth(ctx context.Context, frame tradepulseFrame) {
	if frame.Symbol == "" {
		return
	}
	depth := marketdata.MarketDepth{
		Symbol:    frame.Symbol,
		Timestamp: unixMillis(frame.TS),
		Bids:      make([]marketdata.DepthLevel, 0, len(frame.Bids)),
		Asks:      make([]marketdata.DepthLevel, 0, len(frame.Asks)),
	}
	for _, level := range frame.Bids {
		depth.Bids = append(depth.Bids, marketdata.DepthLevel{Price: level.Price, Size: level.Size, Orders: level.Orders})
	}
	for _, level := range frame.Asks {
		depth.Asks = append(depth.Asks, marketdata.DepthLevel{Price: level.Price, Size: level.Size, Orders: level.Orders})
	}
	t.emitDepth(ctx, depth)
}

func tradepulseChannels(channels []interfaces.Channel) []string {
	names := make([]string, 0, len(channels))
	for _, ch := range channels {
		switch ch {
		case interfaces.ChannelQuotes:
			names = append(names, "quote")
		case interfaces.ChannelTrades:
			names = append(names, "trade")
		case interfaces.ChannelDepth:
			names = append(names, "depth")
		}
	}
	return names
}
