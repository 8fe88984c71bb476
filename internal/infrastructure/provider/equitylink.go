package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"main/internal/config"
	instruments "main/internal/domain/entity/instruments"
	marketdata "main/internal/domain/entity/marketdata"
	interfaces "main/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// Equitylink streams stock and index data. The source encodes every numeric
// field as a string; malformed numbers parse to zero instead of dropping the
// message. Authentication is a bearer token header.
type Equitylink struct {
	adapterCore
	cfg        config.ProviderConfig
	descriptor instruments.ProviderDescriptor
	session    *session
	poller     *poller

	runCtx context.Context
}

var _ interfaces.Provider = (*Equitylink)(nil)

type equitylinkFrame struct {
	Ev     string `json:"ev"`
	Sym    string `json:"sym"`
	Bid    string `json:"bp"`
	Ask    string `json:"ap"`
	Last   string `json:"lp"`
	Open   string `json:"o"`
	High   string `json:"h"`
	Low    string `json:"l"`
	Prev   string `json:"pc"`
	Volume string `json:"v"`
	Price  string `json:"p"`
	Size   string `json:"s"`
	Side   string `json:"side"`
	ID     string `json:"i"`
	T      int64  `json:"t"`
}

type equitylinkControl struct {
	Action  string `json:"action"`
	Symbols string `json:"symbols"`
}

// NewEquitylink builds the adapter; the session is not opened until Connect.
func NewEquitylink(cfg config.ProviderConfig, descriptor instruments.ProviderDescriptor, publisher interfaces.Publisher, logger *logrus.Logger) *Equitylink {
	e := &Equitylink{
		adapterCore: newAdapterCore(descriptor.Name, publisher, logger),
		cfg:         cfg,
		descriptor:  descriptor,
	}
	e.poller = newPoller(cfg.PollInterval, e.pollFetch, publisher, e.logger.WithField("mode", "poll"))
	return e
}

func (e *Equitylink) Name() string { return e.descriptor.Name }

func (e *Equitylink) Descriptor() instruments.ProviderDescriptor { return e.descriptor }

func (e *Equitylink) header() http.Header {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+e.cfg.Token)
	return header
}

// Connect starts the background streaming session.
func (e *Equitylink) Connect(ctx context.Context) error {
	if !e.cfg.Enabled() || e.cfg.Token == "" {
		e.logger.Warn("missing endpoint or token, adapter stays disconnected")
		return nil
	}
	e.runCtx = ctx
	e.session = newSession(sessionConfig{
		Name:      e.Name(),
		URL:       e.cfg.URL,
		Header:    e.header(),
		Backoff:   reconnectPolicy(e.cfg.ReconnectDelay),
		OnConnect: e.resubscribe,
		OnMessage: e.handleMessage,
		Logger:    e.logger,
	})
	e.session.Start(ctx)
	return nil
}

func (e *Equitylink) resubscribe(s *session) error {
	e.poller.Stop()
	for _, symbol := range e.subs.Symbols() {
		if err := s.SendJSON(equitylinkControl{Action: "subscribe", Symbols: symbol}); err != nil {
			return err
		}
	}
	return nil
}

// Subscribe forwards a subscribe frame when the symbol is newly desired.
// The source streams quotes and trades on one subscription, so channel
// additions to an already subscribed symbol send nothing.
func (e *Equitylink) Subscribe(ctx context.Context, symbol string, channels []interfaces.Channel) error {
	alreadyDesired := len(e.subs.Symbols()) > 0 && containsSymbol(e.subs.Symbols(), symbol)
	added := e.subs.Add(symbol, channels)
	if len(added) == 0 || alreadyDesired {
		return nil
	}
	if e.session == nil || !e.session.Connected() {
		e.poller.Add(ctx, symbol)
		return nil
	}
	return e.session.SendJSON(equitylinkControl{Action: "subscribe", Symbols: symbol})
}

// Unsubscribe is idempotent; unknown subscriptions are a no-op.
func (e *Equitylink) Unsubscribe(_ context.Context, symbol string, channels []interfaces.Channel) error {
	removed := e.subs.Remove(symbol, channels)
	if len(removed) == 0 {
		return nil
	}
	if containsSymbol(e.subs.Symbols(), symbol) {
		// Other channels still active for this symbol.
		return nil
	}
	e.poller.Remove(symbol)
	if e.session == nil || !e.session.Connected() {
		return nil
	}
	return e.session.SendJSON(equitylinkControl{Action: "unsubscribe", Symbols: symbol})
}

// TestConnectivity dials the endpoint once with a bounded timeout.
func (e *Equitylink) TestConnectivity(ctx context.Context) error {
	if !e.cfg.Enabled() || e.cfg.Token == "" {
		return fmt.Errorf("equitylink is not configured")
	}
	return probeEndpoint(ctx, e.cfg.URL, e.header())
}

// Close tears down the session and the polling fallback.
func (e *Equitylink) Close() error {
	e.poller.Stop()
	if e.session != nil {
		e.session.Close()
	}
	return nil
}

// handleMessage dispatches one frame by its event tag. All numerics arrive
// string-encoded and default to zero on malformed input.
func (e *Equitylink) handleMessage(raw []byte) {
	var frame equitylinkFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		e.logger.WithError(err).Warn("drop unparsable frame")
		return
	}
	ctx := e.runCtx
	if ctx == nil {
		ctx = context.Background()
	}
	switch frame.Ev {
	case "Q":
		e.handleQuote(ctx, frame)
	case "T":
		e.handleTrade(ctx, frame)
	}
}

func (e *Equitylink) handleQuote(ctx context.Context, frame equitylinkFrame) {
	if frame.Sym == "" {
		return
	}
	last := parseFloat(frame.Last)
	prev := parseFloat(frame.Prev)
	quote := marketdata.Quote{
		Symbol:    frame.Sym,
		Timestamp: unixMillis(frame.T),
		Bid:       parseFloat(frame.Bid),
		Ask:       parseFloat(frame.Ask),
		Last:      last,
		Open:      parseFloat(frame.Open),
		High:      parseFloat(frame.High),
		Low:       parseFloat(frame.Low),
		Close:     prev,
		Volume:    parseFloat(frame.Volume),
	}
	if quote.Bid > 0 && quote.Ask > 0 {
		quote.Spread = quote.Ask - quote.Bid
	}
	if prev > 0 {
		quote.Change = last - prev
		quote.ChangePercent = quote.Change / prev * 100
	}
	e.emitQuote(ctx, quote)
}

func (e *Equitylink) handleTrade(ctx context.Context, frame equitylinkFrame) {
	if frame.Sym == "" {
		return
	}
	side := marketdata.TradeSideBuy
	if frame.Side == "S" || frame.Side == "sell" {
		side = marketdata.TradeSideSell
	}
	e.emitTrade(ctx, marketdata.Trade{
		Symbol:    frame.Sym,
		Price:     parseFloat(frame.Price),
		Size:      parseFloat(frame.Size),
		Side:      side,
		TradeID:   frame.ID,
		Timestamp: unixMillis(frame.T),
	})
}

func containsSymbol(symbols []string, symbol string) bool {
	for _, s := range symbols {
		if s == symbol {
			return true
		}
	}
	return false
}
