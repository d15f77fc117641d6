package domain

import "sort"

// PortfolioPosition is the derived net holding for a single coin. Never
// persisted; recomputed from the wallet on every read.
type PortfolioPosition struct {
	CoinID           string  `json:"coinId"`
	CoinName         string  `json:"coinName"`
	Symbol           string  `json:"symbol"`
	Quantity         float64 `json:"quantity"`
	AverageBuyPrice  float64 `json:"averageBuyPrice"`
	LastPurchaseDate string  `json:"lastPurchaseDate,omitempty"`
}

type positionAccumulator struct {
	position  PortfolioPosition
	totalCost float64
	order     int
}

// AggregatePortfolio folds wallet entries into per-coin positions.
//
// Open entries add quantity and cost basis; closed entries subtract their
// quantity and contribute nothing to cost, so the average buy price is
// weighted over still-open lots only. This is a deliberate simplification,
// not FIFO/LIFO lot matching: a fully closed coin nets to zero and is
// dropped, its realized gains visible only through the P&L series.
//
// Entry order does not affect quantity or cost totals. It does decide
// LastPurchaseDate, where the last-processed open buy wins.
func AggregatePortfolio(entries []WalletEntry) []PortfolioPosition {
	accs := make(map[string]*positionAccumulator)
	order := 0

	for _, e := range entries {
		qty := e.Quantity
		cost := e.BuyPrice * e.Quantity
		if e.Closed() {
			qty = -e.Quantity
			cost = 0
		}

		acc, ok := accs[e.CoinID]
		if !ok {
			acc = &positionAccumulator{
				position: PortfolioPosition{
					CoinID:   e.CoinID,
					CoinName: e.CoinName,
					Symbol:   e.Symbol,
				},
				order: order,
			}
			accs[e.CoinID] = acc
			order++
		}

		acc.position.Quantity += qty
		acc.totalCost += cost
		if !e.Closed() && e.BuyDate != "" {
			acc.position.LastPurchaseDate = e.BuyDate
		}
	}

	positions := make([]PortfolioPosition, 0, len(accs))
	for _, acc := range accs {
		if acc.position.Quantity <= 0 {
			continue
		}
		acc.position.AverageBuyPrice = acc.totalCost / acc.position.Quantity
		positions = append(positions, acc.position)
	}

	// Map iteration order is random; keep first-seen order for stable output.
	sort.Slice(positions, func(i, j int) bool {
		return accs[positions[i].CoinID].order < accs[positions[j].CoinID].order
	})
	return positions
}
