package router

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"main/internal/application/service/catalog"
	instruments "main/internal/domain/entity/instruments"
	interfaces "main/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// adapterSource resolves the ordered adapter set for an asset class.
type adapterSource interface {
	ForAssetClass(ac instruments.AssetClass) []interfaces.Provider
}

// Router maps an instrument and requested channel set to the adapters
// responsible for its asset class and forwards subscribe and unsubscribe
// intents. Subscription state is diffed so channels already active never
// trigger duplicate provider-level subscribe calls.
type Router struct {
	catalog  *catalog.Service
	adapters adapterSource
	logger   *logrus.Entry

	mu     sync.RWMutex
	active map[string]map[interfaces.Channel]struct{}
}

// NewRouter builds a subscription router over the catalog and registry.
func NewRouter(cat *catalog.Service, adapters adapterSource, logger *logrus.Logger) *Router {
	return &Router{
		catalog:  cat,
		adapters: adapters,
		logger:   logger.WithField("component", "router"),
		active:   make(map[string]map[interfaces.Channel]struct{}),
	}
}

// Subscribe activates the requested channels for a symbol on every eligible
// adapter. Channels already active are diffed out before forwarding.
func (r *Router) Subscribe(ctx context.Context, symbol string, channels []interfaces.Channel) error {
	inst, err := r.catalog.Get(symbol)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", symbol, err)
	}

	providers := r.adapters.ForAssetClass(inst.AssetClass)
	if len(providers) == 0 {
		return fmt.Errorf("no provider covers asset class %s", inst.AssetClass)
	}

	added := r.markActive(symbol, channels)
	if len(added) == 0 {
		return nil
	}

	var errs []error
	for _, p := range providers {
		if err := p.Subscribe(ctx, symbol, added); err != nil {
			r.logger.WithError(err).WithFields(logrus.Fields{
				"provider": p.Name(),
				"symbol":   symbol,
			}).Warn("provider subscribe failed")
			errs = append(errs, err)
		}
	}
	if len(errs) == len(providers) {
		// Every provider refused; roll the diff back so a retry re-sends.
		r.markInactive(symbol, added)
		return errors.Join(errs...)
	}
	return nil
}

// Unsubscribe deactivates channels for a symbol. It is idempotent: unknown
// symbols or channels are a no-op, not an error.
func (r *Router) Unsubscribe(ctx context.Context, symbol string, channels []interfaces.Channel) error {
	removed := r.markInactive(symbol, channels)
	if len(removed) == 0 {
		return nil
	}

	inst, err := r.catalog.Get(symbol)
	if err != nil {
		return nil
	}
	for _, p := range r.adapters.ForAssetClass(inst.AssetClass) {
		if err := p.Unsubscribe(ctx, symbol, removed); err != nil {
			r.logger.WithError(err).WithFields(logrus.Fields{
				"provider": p.Name(),
				"symbol":   symbol,
			}).Warn("provider unsubscribe failed")
		}
	}
	return nil
}

// ActiveChannels returns the channels currently active for a symbol.
func (r *Router) ActiveChannels(symbol string) []interfaces.Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set, ok := r.active[symbol]
	if !ok {
		return nil
	}
	channels := make([]interfaces.Channel, 0, len(set))
	for ch := range set {
		channels = append(channels, ch)
	}
	return channels
}

// ActiveSymbols returns all symbols with at least one active channel.
func (r *Router) ActiveSymbols() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	symbols := make([]string, 0, len(r.active))
	for symbol := range r.active {
		symbols = append(symbols, symbol)
	}
	return symbols
}

func (r *Router) markActive(symbol string, channels []interfaces.Channel) []interfaces.Channel {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.active[symbol]
	if !ok {
		set = make(map[interfaces.Channel]struct{})
		r.active[symbol] = set
	}
	var added []interfaces.Channel
	for _, ch := range channels {
		if _, exists := set[ch]; exists {
			continue
		}
		set[ch] = struct{}{}
		added = append(added, ch)
	}
	return added
}

func (r *Router) markInactive(symbol string, channels []interfaces.Channel) []interfaces.Channel {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.active[symbol]
	if !ok {
		return nil
	}
	var removed []interfaces.Channel
	for _, ch := range channels {
		if _, exists := set[ch]; !exists {
			continue
		}
		delete(set, ch)
		removed = append(removed, ch)
	}
	if len(set) == 0 {
		delete(r.active, symbol)
	}
	return removed
}
