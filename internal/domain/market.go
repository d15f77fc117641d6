package domain

// Market is one row of the market overview: a coin with its spot price and
// recent performance, as reported by the price API.
type Market struct {
	CoinID        string    `json:"coinId"`
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Image         string    `json:"image"`
	CurrentPrice  float64   `json:"currentPrice"`
	MarketCap     float64   `json:"marketCap"`
	MarketCapRank int       `json:"marketCapRank"`
	TotalVolume   float64   `json:"totalVolume"`
	PctChange24h  float64   `json:"pctChange24h"`
	PctChange7d   float64   `json:"pctChange7d"`
	Sparkline7d   []float64 `json:"sparkline7d,omitempty"`
}

// PricePoint is one sample of a historical price series.
type PricePoint struct {
	Timestamp int64   `json:"timestamp"` // unix milliseconds
	Price     float64 `json:"price"`
}

// CoinMatch is a search hit from the price API's coin index.
type CoinMatch struct {
	CoinID        string `json:"coinId"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	MarketCapRank int    `json:"marketCapRank"`
}

// WalletSummary is the headline card over the whole wallet: total money put
// in, profit locked by closed entries, and paper profit on open ones. Unlike
// the P&L series this scores each entry against its own buy price, not a
// weighted average.
type WalletSummary struct {
	TotalInvestment float64 `json:"totalInvestment"`
	Realized        float64 `json:"realized"`
	Unrealized      float64 `json:"unrealized"`
}

// SummarizeWallet computes the wallet summary given a spot price snapshot
// for the open entries' coins.
func SummarizeWallet(entries []WalletEntry, spotPrices map[string]float64) WalletSummary {
	var s WalletSummary
	for _, e := range entries {
		s.TotalInvestment += e.BuyPrice * e.Quantity
		if e.Closed() {
			s.Realized += (*e.SellPrice - e.BuyPrice) * e.Quantity
		} else {
			s.Unrealized += (spotPrices[e.CoinID] - e.BuyPrice) * e.Quantity
		}
	}
	s.TotalInvestment = round2(s.TotalInvestment)
	s.Realized = round2(s.Realized)
	s.Unrealized = round2(s.Unrealized)
	return s
}
