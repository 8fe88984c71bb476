package provider

import (
	"context"
	"sync"
	"time"

	marketdata "main/internal/domain/entity/marketdata"
	interfaces "main/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// fetchFunc produces the polled canonical event for one symbol, typically a
// re-stamped copy of the last known value.
type fetchFunc func(ctx context.Context, symbol string) (marketdata.Event, bool)

// poller is the generic polling fallback shared by all adapters: re-emit a
// value per tracked symbol on a fixed interval while the streaming session
// is unavailable.
type poller struct {
	interval  time.Duration
	fetch     fetchFunc
	publisher interfaces.Publisher
	logger    *logrus.Entry

	mu      sync.Mutex
	symbols map[string]struct{}
	started bool
	cancel  context.CancelFunc
}

func newPoller(interval time.Duration, fetch fetchFunc, publisher interfaces.Publisher, logger *logrus.Entry) *poller {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &poller{
		interval:  interval,
		fetch:     fetch,
		publisher: publisher,
		logger:    logger,
		symbols:   make(map[string]struct{}),
	}
}

// Add starts polling a symbol, launching the loop on first use.
func (p *poller) Add(ctx context.Context, symbol string) {
	p.mu.Lock()
	p.symbols[symbol] = struct{}{}
	if !p.started {
		p.started = true
		loopCtx, cancel := context.WithCancel(ctx)
		p.cancel = cancel
		go p.loop(loopCtx)
	}
	p.mu.Unlock()
}

// Remove stops polling a symbol. Unknown symbols are a no-op.
func (p *poller) Remove(symbol string) {
	p.mu.Lock()
	delete(p.symbols, symbol)
	p.mu.Unlock()
}

// Stop halts the polling loop.
func (p *poller) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.started = false
	p.mu.Unlock()
}

func (p *poller) loop(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.mu.Lock()
			symbols := make([]string, 0, len(p.symbols))
			for symbol := range p.symbols {
				symbols = append(symbols, symbol)
			}
			p.mu.Unlock()

			for _, symbol := range symbols {
				event, ok := p.fetch(ctx, symbol)
				if !ok {
					continue
				}
				p.publisher.Publish(ctx, event)
			}
			if len(symbols) > 0 {
				p.logger.WithField("symbols", len(symbols)).Debug("poll tick")
			}
		}
	}
}
