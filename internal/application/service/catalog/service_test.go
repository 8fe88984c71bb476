package catalog

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	instruments "main/internal/domain/entity/instruments"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCache is a minimal in-memory cache for catalog snapshot tests.
type memCache struct {
	mu     sync.Mutex
	values map[string][]byte
}

func newMemCache() *memCache { return &memCache{values: make(map[string][]byte)} }

func (m *memCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *memCache) SetWithTTL(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memCache) ListPush(context.Context, string, []byte, int64) error { return nil }

func (m *memCache) ListRange(context.Context, string, int64, int64) ([][]byte, error) {
	return nil, nil
}

func (m *memCache) SetAdd(context.Context, string, string) error { return nil }

func (m *memCache) SetMembers(context.Context, string) ([]string, error) { return nil, nil }

func (m *memCache) Close() error { return nil }

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func loadedService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(newMemCache(), instruments.SeedCatalog(), quietLogger())
	require.NoError(t, svc.Load(context.Background()))
	return svc
}

func TestLoadSeedsTenCryptoInstruments(t *testing.T) {
	svc := loadedService(t)

	crypto := svc.ByAssetClass(instruments.AssetClassCrypto)
	assert.Len(t, crypto, 10)
	for _, inst := range crypto {
		assert.Equal(t, instruments.AssetClassCrypto, inst.AssetClass)
	}
}

func TestLoadWritesSnapshotBack(t *testing.T) {
	cache := newMemCache()
	svc := NewService(cache, instruments.SeedCatalog(), quietLogger())
	require.NoError(t, svc.Load(context.Background()))

	snapshot, err := cache.Get(context.Background(), catalogKey)
	require.NoError(t, err)
	assert.NotEmpty(t, snapshot)

	// A second service instance loads from the snapshot.
	second := NewService(cache, nil, quietLogger())
	require.NoError(t, second.Load(context.Background()))
	assert.Equal(t, len(svc.All()), len(second.All()))
}

func TestGetUnknownSymbol(t *testing.T) {
	svc := loadedService(t)

	_, err := svc.Get("NOPE")
	assert.ErrorIs(t, err, ErrInstrumentNotFound)
}

func TestSearchMatchesSymbolAndName(t *testing.T) {
	svc := loadedService(t)

	bySymbol := svc.Search("BTC")
	require.NotEmpty(t, bySymbol)
	for _, inst := range bySymbol {
		assert.True(t, inst.Matches("BTC"))
	}
}

func TestWorkingSetIsBoundedPrefix(t *testing.T) {
	svc := loadedService(t)

	all := svc.All()
	limited := svc.WorkingSet(5)
	require.Len(t, limited, 5)
	for i, symbol := range limited {
		assert.Equal(t, all[i].Symbol, symbol)
	}

	assert.Len(t, svc.WorkingSet(0), len(all))
	assert.Len(t, svc.WorkingSet(10_000), len(all))
}
