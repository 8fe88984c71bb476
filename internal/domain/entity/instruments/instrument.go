package instruments

import (
	"fmt"
	"strings"
)

// AssetClass tags an instrument with its market segment.
type AssetClass string

const (
	AssetClassStock     AssetClass = "stock"
	AssetClassForex     AssetClass = "forex"
	AssetClassCrypto    AssetClass = "crypto"
	AssetClassCommodity AssetClass = "commodity"
	AssetClassBond      AssetClass = "bond"
	AssetClassOption    AssetClass = "option"
	AssetClassFuture    AssetClass = "future"
	AssetClassIndex     AssetClass = "index"
)

func (ac AssetClass) String() string {
	return string(ac)
}

func (ac AssetClass) IsValid() bool {
	switch ac {
	case AssetClassStock, AssetClassForex, AssetClassCrypto, AssetClassCommodity,
		AssetClassBond, AssetClassOption, AssetClassFuture, AssetClassIndex:
		return true
	default:
		return false
	}
}

// NewAssetClass parses and validates an asset class tag.
func NewAssetClass(s string) (AssetClass, error) {
	ac := AssetClass(strings.ToLower(strings.TrimSpace(s)))
	if !ac.IsValid() {
		return "", fmt.Errorf("invalid asset class: %s", s)
	}
	return ac, nil
}

// Instrument is one catalog entry. Instruments are created at catalog load
// time and immutable for the process lifetime.
type Instrument struct {
	Symbol     string         `json:"symbol"`
	Name       string         `json:"name"`
	AssetClass AssetClass     `json:"asset_class"`
	Exchange   string         `json:"exchange"`
	Currency   string         `json:"currency"`
	Sector     string         `json:"sector,omitempty"`
	Industry   string         `json:"industry,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Matches reports whether the instrument symbol or display name contains
// the query, case-insensitively. An empty query matches everything.
func (i Instrument) Matches(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(i.Symbol), query) ||
		strings.Contains(strings.ToLower(i.Name), query)
}
