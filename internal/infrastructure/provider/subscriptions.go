package provider

import (
	"sync"

	interfaces "main/internal/domain/interfaces"
)

// subscriptions tracks the channels an adapter wants per symbol so the
// session can replay subscribe frames after a reconnect. The map is guarded
// explicitly since adapters run on their own goroutines.
type subscriptions struct {
	mu      sync.Mutex
	desired map[string]map[interfaces.Channel]struct{}
}

func newSubscriptions() *subscriptions {
	return &subscriptions{desired: make(map[string]map[interfaces.Channel]struct{})}
}

// Add registers channels for a symbol and returns the channels that were
// not already desired. Re-adding an active channel yields nothing to send.
func (s *subscriptions) Add(symbol string, channels []interfaces.Channel) []interfaces.Channel {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.desired[symbol]
	if !ok {
		set = make(map[interfaces.Channel]struct{})
		s.desired[symbol] = set
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

// Remove drops channels for a symbol and returns the ones that were
// actually desired. Removing an unknown subscription is a no-op.
func (s *subscriptions) Remove(symbol string, channels []interfaces.Channel) []interfaces.Channel {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.desired[symbol]
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
		delete(s.desired, symbol)
	}
	return removed
}

// Snapshot returns the full desired state for replay after reconnect.
func (s *subscriptions) Snapshot() map[string][]interfaces.Channel {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]interfaces.Channel, len(s.desired))
	for symbol, set := range s.desired {
		channels := make([]interfaces.Channel, 0, len(set))
		for ch := range set {
			channels = append(channels, ch)
		}
		out[symbol] = channels
	}
	return out
}

// Symbols returns the symbols with at least one desired channel.
func (s *subscriptions) Symbols() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	symbols := make([]string, 0, len(s.desired))
	for symbol := range s.desired {
		symbols = append(symbols, symbol)
	}
	return symbols
}
