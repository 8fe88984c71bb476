package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"main/internal/config"
	instruments "main/internal/domain/entity/instruments"
	marketdata "main/internal/domain/entity/marketdata"
	interfaces "main/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// Coinstream streams crypto tickers. The source batches an array of tickers
// per frame, which fans out into one canonical quote each. Authentication is
// an API key passed as a query parameter.
type Coinstream struct {
	adapterCore
	cfg        config.ProviderConfig
	descriptor instruments.ProviderDescriptor
	session    *session
	poller     *poller

	runCtx context.Context
}

var _ interfaces.Provider = (*Coinstream)(nil)

type coinstreamFrame struct {
	Event string             `json:"event"`
	Data  []coinstreamTicker `json:"data"`
}

type coinstreamTicker struct {
	Symbol string  `json:"symbol"`
	Bid    float64 `json:"bid"`
	Ask    float64 `json:"ask"`
	Last   float64 `json:"last"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
	VWAP   float64 `json:"vwap"`
	TS     int64   `json:"ts"`
}

type coinstreamControl struct {
	Op       string   `json:"op"`
	Channels []string `json:"channels"`
	Symbols  []string `json:"symbols"`
}

// NewCoinstream builds the adapter; the session is not opened until Connect.
func NewCoinstream(cfg config.ProviderConfig, descriptor instruments.ProviderDescriptor, publisher interfaces.Publisher, logger *logrus.Logger) *Coinstream {
	c := &Coinstream{
		adapterCore: newAdapterCore(descriptor.Name, publisher, logger),
		cfg:         cfg,
		descriptor:  descriptor,
	}
	c.poller = newPoller(cfg.PollInterval, c.pollFetch, publisher, c.logger.WithField("mode", "poll"))
	return c
}

func (c *Coinstream) Name() string { return c.descriptor.Name }

func (c *Coinstream) Descriptor() instruments.ProviderDescriptor { return c.descriptor }

// Connect starts the background streaming session. Missing credentials are
// logged and leave the adapter disconnected; the engine runs without it.
func (c *Coinstream) Connect(ctx context.Context) error {
	if !c.cfg.Enabled() || c.cfg.APIKey == "" {
		c.logger.Warn("missing endpoint or api key, adapter stays disconnected")
		return nil
	}
	endpoint, err := c.endpoint()
	if err != nil {
		return err
	}
	c.runCtx = ctx
	c.session = newSession(sessionConfig{
		Name:      c.Name(),
		URL:       endpoint,
		Backoff:   reconnectPolicy(c.cfg.ReconnectDelay),
		OnConnect: c.resubscribe,
		OnMessage: c.handleMessage,
		Logger:    c.logger,
	})
	c.session.Start(ctx)
	return nil
}

func (c *Coinstream) endpoint() (string, error) {
	u, err := url.Parse(c.cfg.URL)
	if err != nil {
		return "", fmt.Errorf("parse coinstream url: %w", err)
	}
	q := u.Query()
	q.Set("api_key", c.cfg.APIKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Subscribe forwards a subscribe frame for the newly desired channels,
// degrading to the polling fallback while the session is down.
func (c *Coinstream) Subscribe(ctx context.Context, symbol string, channels []interfaces.Channel) error {
	added := c.subs.Add(symbol, channels)
	if len(added) == 0 {
		return nil
	}
	if c.session == nil || !c.session.Connected() {
		c.poller.Add(ctx, symbol)
		return nil
	}
	return c.session.SendJSON(coinstreamControl{
		Op:       "subscribe",
		Channels: streamNames(added),
		Symbols:  []string{symbol},
	})
}

// Unsubscribe is idempotent; unknown subscriptions are a no-op.
func (c *Coinstream) Unsubscribe(_ context.Context, symbol string, channels []interfaces.Channel) error {
	removed := c.subs.Remove(symbol, channels)
	if len(removed) == 0 {
		return nil
	}
	c.poller.Remove(symbol)
	if c.session == nil || !c.session.Connected() {
		return nil
	}
	return c.session.SendJSON(coinstreamControl{
		Op:       "unsubscribe",
		Channels: streamNames(removed),
		Symbols:  []string{symbol},
	})
}

// TestConnectivity dials the endpoint once with a bounded timeout.
func (c *Coinstream) TestConnectivity(ctx context.Context) error {
	if !c.cfg.Enabled() || c.cfg.APIKey == "" {
		return fmt.Errorf("coinstream is not configured")
	}
	endpoint, err := c.endpoint()
	if err != nil {
		return err
	}
	return probeEndpoint(ctx, endpoint, nil)
}

// Close tears down the session and the polling fallback.
func (c *Coinstream) Close() error {
	c.poller.Stop()
	if c.session != nil {
		c.session.Close()
	}
	return nil
}

func (c *Coinstream) resubscribe(s *session) error {
	c.poller.Stop()
	for symbol, channels := range c.subs.Snapshot() {
		err := s.SendJSON(coinstreamControl{
			Op:       "subscribe",
			Channels: streamNames(channels),
			Symbols:  []string{symbol},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// handleMessage fans a ticker batch out into canonical quotes. Malformed
// frames are logged and dropped.
func (c *Coinstream) handleMessage(raw []byte) {
	var frame coinstreamFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		c.logger.WithError(err).Warn("drop unparsable frame")
		return
	}
	if frame.Event != "tickers" {
		return
	}
	ctx := c.runCtx
	if ctx == nil {
		ctx = context.Background()
	}
	for _, t := range frame.Data {
		if t.Symbol == "" {
			continue
		}
		quote := marketdata.Quote{
			Symbol:    t.Symbol,
			Timestamp: unixMillis(t.TS),
			Bid:       t.Bid,
			Ask:       t.Ask,
			Last:      t.Last,
			Open:      t.Open,
			High:      t.High,
			Low:       t.Low,
			Close:     t.Close,
			Volume:    t.Volume,
			VWAP:      t.VWAP,
		}
		if t.Bid > 0 && t.Ask > 0 {
			quote.Spread = t.Ask - t.Bid
		}
		if t.Open > 0 {
			quote.Change = t.Last - t.Open
			quote.ChangePercent = quote.Change / t.Open * 100
		}
		c.emitQuote(ctx, quote)
	}
}

func streamNames(channels []interfaces.Channel) []string {
	names := make([]string, 0, len(channels))
	for _, ch := range channels {
		switch ch {
		case interfaces.ChannelQuotes:
			names = append(names, "tickers")
		case interfaces.ChannelTrades:
			names = append(names, "trades")
		case interfaces.ChannelDepth:
			names = append(names, "depth")
		}
	}
	return names
}
