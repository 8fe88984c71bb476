package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	instruments "main/internal/domain/entity/instruments"
	interfaces "main/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

const (
	catalogKey = "instruments:catalog"
	catalogTTL = time.Hour
)

// ErrInstrumentNotFound is returned when a symbol is not in the catalog.
var ErrInstrumentNotFound = errors.New("instrument not found")

// Service owns the instrument catalog. The catalog is loaded once per
// process (from cache when present, otherwise from the static seed) and is
// immutable afterwards.
type Service struct {
	cache  interfaces.Cache
	logger *logrus.Entry
	seed   []instruments.Instrument

	bySymbol map[string]instruments.Instrument
	ordered  []instruments.Instrument
}

// NewService builds the catalog service around a cache and a seed list.
func NewService(cache interfaces.Cache, seed []instruments.Instrument, logger *logrus.Logger) *Service {
	return &Service{
		cache:  cache,
		logger: logger.WithField("component", "catalog"),
		seed:   seed,
	}
}

// Load populates the catalog from the cache snapshot, falling back to the
// seed list and writing the snapshot back with a one hour TTL. Cache
// failures degrade to the seed, never to an error.
func (s *Service) Load(ctx context.Context) error {
	var loaded []instruments.Instrument

	if s.cache != nil {
		data, err := s.cache.Get(ctx, catalogKey)
		if err != nil {
			s.logger.WithError(err).Warn("catalog cache read failed, using seed")
		} else if len(data) > 0 {
			if err := json.Unmarshal(data, &loaded); err != nil {
				s.logger.WithError(err).Warn("catalog cache entry corrupt, using seed")
				loaded = nil
			}
		}
	}

	if len(loaded) == 0 {
		loaded = s.seed
		if s.cache != nil {
			if data, err := json.Marshal(loaded); err == nil {
				if err := s.cache.SetWithTTL(ctx, catalogKey, data, catalogTTL); err != nil {
					s.logger.WithError(err).Warn("catalog cache write failed")
				}
			}
		}
	}

	s.bySymbol = make(map[string]instruments.Instrument, len(loaded))
	s.ordered = make([]instruments.Instrument, 0, len(loaded))
	for _, inst := range loaded {
		if _, exists := s.bySymbol[inst.Symbol]; exists {
			continue
		}
		s.bySymbol[inst.Symbol] = inst
		s.ordered = append(s.ordered, inst)
	}
	s.logger.WithField("instruments", len(s.ordered)).Info("catalog loaded")
	return nil
}

// Get returns the instrument for a symbol.
func (s *Service) Get(symbol string) (instruments.Instrument, error) {
	inst, ok := s.bySymbol[symbol]
	if !ok {
		return instruments.Instrument{}, ErrInstrumentNotFound
	}
	return inst, nil
}

// All returns the catalog in load order.
func (s *Service) All() []instruments.Instrument {
	out := make([]instruments.Instrument, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// ByAssetClass returns only the instruments tagged with the asset class.
func (s *Service) ByAssetClass(ac instruments.AssetClass) []instruments.Instrument {
	var out []instruments.Instrument
	for _, inst := range s.ordered {
		if inst.AssetClass == ac {
			out = append(out, inst)
		}
	}
	return out
}

// Search returns instruments whose symbol or name contains the query,
// sorted by symbol.
func (s *Service) Search(query string) []instruments.Instrument {
	var out []instruments.Instrument
	for _, inst := range s.ordered {
		if inst.Matches(query) {
			out = append(out, inst)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// WorkingSet returns the first limit symbols of the catalog, the bounded
// prefix the analytics engine iterates each tick.
func (s *Service) WorkingSet(limit int) []string {
	if limit <= 0 || limit > len(s.ordered) {
		limit = len(s.ordered)
	}
	symbols := make([]string, 0, limit)
	for _, inst := range s.ordered[:limit] {
		symbols = append(symbols, inst.Symbol)
	}
	return symbols
}
