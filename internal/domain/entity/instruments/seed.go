package instruments

// SeedCatalog is the static catalog used when the cache holds no instrument
// snapshot. Exactly ten crypto entries are seeded alongside the other asset
// classes.
func SeedCatalog() []Instrument {
	return []Instrument{
		// Crypto (10)
		{Symbol: "BTCUSD", Name: "Bitcoin / US Dollar", AssetClass: AssetClassCrypto, Exchange: "GLOBAL", Currency: "USD"},
		{Symbol: "ETHUSD", Name: "Ethereum / US Dollar", AssetClass: AssetClassCrypto, Exchange: "GLOBAL", Currency: "USD"},
		{Symbol: "SOLUSD", Name: "Solana / US Dollar", AssetClass: AssetClassCrypto, Exchange: "GLOBAL", Currency: "USD"},
		{Symbol: "AVAXUSD", Name: "Avalanche / US Dollar", AssetClass: AssetClassCrypto, Exchange: "GLOBAL", Currency: "USD"},
		{Symbol: "ADAUSD", Name: "Cardano / US Dollar", AssetClass: AssetClassCrypto, Exchange: "GLOBAL", Currency: "USD"},
		{Symbol: "DOTUSD", Name: "Polkadot / US Dollar", AssetClass: AssetClassCrypto, Exchange: "GLOBAL", Currency: "USD"},
		{Symbol: "LINKUSD", Name: "Chainlink / US Dollar", AssetClass: AssetClassCrypto, Exchange: "GLOBAL", Currency: "USD"},
		{Symbol: "MATICUSD", Name: "Polygon / US Dollar", AssetClass: AssetClassCrypto, Exchange: "GLOBAL", Currency: "USD"},
		{Symbol: "XRPUSD", Name: "Ripple / US Dollar", AssetClass: AssetClassCrypto, Exchange: "GLOBAL", Currency: "USD"},
		{Symbol: "DOGEUSD", Name: "Dogecoin / US Dollar", AssetClass: AssetClassCrypto, Exchange: "GLOBAL", Currency: "USD"},

		// Stocks
		{Symbol: "AAPL", Name: "Apple Inc.", AssetClass: AssetClassStock, Exchange: "NASDAQ", Currency: "USD", Sector: "Technology", Industry: "Consumer Electronics"},
		{Symbol: "MSFT", Name: "Microsoft Corporation", AssetClass: AssetClassStock, Exchange: "NASDAQ", Currency: "USD", Sector: "Technology", Industry: "Software"},
		{Symbol: "GOOGL", Name: "Alphabet Inc.", AssetClass: AssetClassStock, Exchange: "NASDAQ", Currency: "USD", Sector: "Technology", Industry: "Internet Services"},
		{Symbol: "AMZN", Name: "Amazon.com Inc.", AssetClass: AssetClassStock, Exchange: "NASDAQ", Currency: "USD", Sector: "Consumer Cyclical", Industry: "Internet Retail"},
		{Symbol: "TSLA", Name: "Tesla Inc.", AssetClass: AssetClassStock, Exchange: "NASDAQ", Currency: "USD", Sector: "Consumer Cyclical", Industry: "Auto Manufacturers"},
		{Symbol: "COIN", Name: "Coinbase Global Inc.", AssetClass: AssetClassStock, Exchange: "NASDAQ", Currency: "USD", Sector: "Financial Services", Industry: "Capital Markets"},
		{Symbol: "JPM", Name: "JPMorgan Chase & Co.", AssetClass: AssetClassStock, Exchange: "NYSE", Currency: "USD", Sector: "Financial Services", Industry: "Banks"},

		// Forex
		{Symbol: "EURUSD", Name: "Euro / US Dollar", AssetClass: AssetClassForex, Exchange: "FX", Currency: "USD"},
		{Symbol: "GBPUSD", Name: "British Pound / US Dollar", AssetClass: AssetClassForex, Exchange: "FX", Currency: "USD"},
		{Symbol: "USDJPY", Name: "US Dollar / Japanese Yen", AssetClass: AssetClassForex, Exchange: "FX", Currency: "JPY"},

		// Commodities
		{Symbol: "XAUUSD", Name: "Gold Spot", AssetClass: AssetClassCommodity, Exchange: "COMEX", Currency: "USD"},
		{Symbol: "XAGUSD", Name: "Silver Spot", AssetClass: AssetClassCommodity, Exchange: "COMEX", Currency: "USD"},
		{Symbol: "WTIUSD", Name: "WTI Crude Oil", AssetClass: AssetClassCommodity, Exchange: "NYMEX", Currency: "USD"},

		// Indices & ETFs tracked as indices
		{Symbol: "SPX", Name: "S&P 500 Index", AssetClass: AssetClassIndex, Exchange: "CBOE", Currency: "USD"},
		{Symbol: "QQQ", Name: "Invesco QQQ Trust", AssetClass: AssetClassIndex, Exchange: "NASDAQ", Currency: "USD"},
		{Symbol: "DIA", Name: "SPDR Dow Jones Industrial Average ETF", AssetClass: AssetClassIndex, Exchange: "NYSE", Currency: "USD"},
		{Symbol: "DXY", Name: "US Dollar Index", AssetClass: AssetClassIndex, Exchange: "ICE", Currency: "USD"},

		// Bonds
		{Symbol: "US10Y", Name: "US 10 Year Treasury Note", AssetClass: AssetClassBond, Exchange: "CBOT", Currency: "USD"},
		{Symbol: "US2Y", Name: "US 2 Year Treasury Note", AssetClass: AssetClassBond, Exchange: "CBOT", Currency: "USD"},
	}
}
