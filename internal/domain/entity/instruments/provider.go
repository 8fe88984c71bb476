package instruments

import "time"

// ProviderDescriptor describes one external market data source. Descriptors
// are static configuration used to rank sources per asset class; they are
// never mutated at runtime.
type ProviderDescriptor struct {
	Name        string        `json:"name"`
	AssetClass  []AssetClass  `json:"asset_class"`
	Priority    int           `json:"priority"`
	Latency     time.Duration `json:"latency"`
	Reliability float64       `json:"reliability"`
	CostPerUnit float64       `json:"cost_per_unit"`
}

// Covers reports whether the provider serves the given asset class.
func (d ProviderDescriptor) Covers(ac AssetClass) bool {
	for _, candidate := range d.AssetClass {
		if candidate == ac {
			return true
		}
	}
	return false
}

// DefaultProviders is the default source table, injected at wiring time so
// deployments can extend it without code changes.
func DefaultProviders() []ProviderDescriptor {
	return []ProviderDescriptor{
		{
			Name:        "coinstream",
			AssetClass:  []AssetClass{AssetClassCrypto},
			Priority:    1,
			Latency:     50 * time.Millisecond,
			Reliability: 0.99,
			CostPerUnit: 0,
		},
		{
			Name:        "tradepulse",
			AssetClass:  []AssetClass{AssetClassCrypto},
			Priority:    2,
			Latency:     80 * time.Millisecond,
			Reliability: 0.97,
			CostPerUnit: 0.0001,
		},
		{
			Name:        "equitylink",
			AssetClass:  []AssetClass{AssetClassStock, AssetClassIndex},
			Priority:    1,
			Latency:     150 * time.Millisecond,
			Reliability: 0.98,
			CostPerUnit: 0.0005,
		},
		{
			Name:        "fxgateway",
			AssetClass:  []AssetClass{AssetClassForex, AssetClassCommodity},
			Priority:    1,
			Latency:     200 * time.Millisecond,
			Reliability: 0.95,
			CostPerUnit: 0.0002,
		},
	}
}

// RelatedSymbols maps a symbol to the peers its correlation is computed
// against. The table is injected configuration, not an embedded constant,
// so deployments can extend it without redeploying the engine.
func RelatedSymbols() map[string][]string {
	return map[string][]string{
		"BTCUSD":  {"ETHUSD", "SOLUSD", "COIN"},
		"ETHUSD":  {"BTCUSD", "SOLUSD", "AVAXUSD"},
		"SOLUSD":  {"BTCUSD", "ETHUSD"},
		"AAPL":    {"MSFT", "GOOGL", "QQQ"},
		"MSFT":    {"AAPL", "GOOGL", "QQQ"},
		"GOOGL":   {"AAPL", "MSFT"},
		"EURUSD":  {"GBPUSD", "USDJPY"},
		"GBPUSD":  {"EURUSD", "USDJPY"},
		"XAUUSD":  {"XAGUSD", "DXY"},
		"SPX":     {"QQQ", "DIA"},
	}
}
