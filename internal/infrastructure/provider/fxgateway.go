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

// Fxgateway streams forex and spot commodity rates. Frames carry only bid
// and ask, so last price and spread are derived from the midpoint. The feed
// is unauthenticated and leans on the polling fallback whenever the session
// is unavailable.
type Fxgateway struct {
	adapterCore
	cfg        config.ProviderConfig
	descriptor instruments.ProviderDescriptor
	session    *session
	poller     *poller

	runCtx context.Context
}

var _ interfaces.Provider = (*Fxgateway)(nil)

type fxgatewayFrame struct {
	Pair string  `json:"pair"`
	Bid  float64 `json:"bid"`
	Ask  float64 `json:"ask"`
	TS   int64   `json:"ts"`
}

type fxgatewayControl struct {
	Action string   `json:"action"`
	Pairs  []string `json:"pairs"`
}

// NewFxgateway builds the adapter; the session is not opened until Connect.
func NewFxgateway(cfg config.ProviderConfig, descriptor instruments.ProviderDescriptor, publisher interfaces.Publisher, logger *logrus.Logger) *Fxgateway {
	f := &Fxgateway{
		adapterCore: newAdapterCore(descriptor.Name, publisher, logger),
		cfg:         cfg,
		descriptor:  descriptor,
	}
	f.poller = newPoller(cfg.PollInterval, f.pollFetch, publisher, f.logger.WithField("mode", "poll"))
	return f
}

func (f *Fxgateway) Name() string { return f.descriptor.Name }

func (f *Fxgateway) Descriptor() instruments.ProviderDescriptor { return f.descriptor }

// Connect starts the background streaming session. The source requires no
// credentials.
func (f *Fxgateway) Connect(ctx context.Context) error {
	if !f.cfg.Enabled() {
		f.logger.Warn("missing endpoint, adapter stays disconnected")
		return nil
	}
	f.runCtx = ctx
	f.session = newSession(sessionConfig{
		Name:      f.Name(),
		URL:       f.cfg.URL,
		Backoff:   reconnectPolicy(f.cfg.ReconnectDelay),
		OnConnect: f.resubscribe,
		OnMessage: f.handleMessage,
		Logger:    f.logger,
	})
	f.session.Start(ctx)
	return nil
}

func (f *Fxgateway) resubscribe(s *session) error {
	f.poller.Stop()
	symbols := f.subs.Symbols()
	if len(symbols) == 0 {
		return nil
	}
	return s.SendJSON(fxgatewayControl{Action: "subscribe", Pairs: symbols})
}

// Subscribe forwards a subscribe frame, or registers the symbol with the
// polling fallback while the session is down.
func (f *Fxgateway) Subscribe(ctx context.Context, symbol string, channels []interfaces.Channel) error {
	added := f.subs.Add(symbol, channels)
	if len(added) == 0 {
		return nil
	}
	if f.session == nil || !f.session.Connected() {
		f.poller.Add(ctx, symbol)
		return nil
	}
	return f.session.SendJSON(fxgatewayControl{Action: "subscribe", Pairs: []string{symbol}})
}

// Unsubscribe is idempotent; unknown subscriptions are a no-op.
func (f *Fxgateway) Unsubscribe(_ context.Context, symbol string, channels []interfaces.Channel) error {
	removed := f.subs.Remove(symbol, channels)
	if len(removed) == 0 {
		return nil
	}
	f.poller.Remove(symbol)
	if f.session == nil || !f.session.Connected() {
		return nil
	}
	return f.session.SendJSON(fxgatewayControl{Action: "unsubscribe", Pairs: []string{symbol}})
}

// TestConnectivity dials the endpoint once with a bounded timeout.
func (f *Fxgateway) TestConnectivity(ctx context.Context) error {
	if !f.cfg.Enabled() {
		return fmt.Errorf("fxgateway is not configured")
	}
	return probeEndpoint(ctx, f.cfg.URL, nil)
}

// Close tears down the session and the polling fallback.
func (f *Fxgateway) Close() error {
	f.poller.Stop()
	if f.session != nil {
		f.session.Close()
	}
	return nil
}

// handleMessage normalizes one bid/ask frame into a canonical quote with a
// derived midpoint last price.
func (f *Fxgateway) handleMessage(raw []byte) {
	var frame fxgatewayFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		f.logger.WithError(err).Warn("drop unparsable frame")
		return
	}
	if frame.Pair == "" || (frame.Bid <= 0 && frame.Ask <= 0) {
		return
	}
	ctx := f.runCtx
	if ctx == nil {
		ctx = context.Background()
	}
	quote := marketdata.Quote{
		Symbol:    frame.Pair,
		Timestamp: unixMillis(frame.TS),
		Bid:       frame.Bid,
		Ask:       frame.Ask,
	}
	if frame.Bid > 0 && frame.Ask > 0 {
		quote.Last = (frame.Bid + frame.Ask) / 2
		quote.Spread = frame.Ask - frame.Bid
	} else if frame.Bid > 0 {
		quote.Last = frame.Bid
	} else {
		quote.Last = frame.Ask
	}
	f.emitQuote(ctx, quote)
}
