package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestAggregatePortfolio_WeightedAverage(t *testing.T) {
	entries := []WalletEntry{
		{ID: "1", CoinID: "bitcoin", CoinName: "Bitcoin", Symbol: "BTC", Quantity: 2, BuyDate: "2024-01-10", BuyPrice: 100},
		{ID: "2", CoinID: "bitcoin", CoinName: "Bitcoin", Symbol: "BTC", Quantity: 3, BuyDate: "2024-02-10", BuyPrice: 200},
	}

	positions := AggregatePortfolio(entries)
	require.Len(t, positions, 1)

	p := positions[0]
	assert.Equal(t, "bitcoin", p.CoinID)
	assert.Equal(t, 5.0, p.Quantity)
	// (100*2 + 200*3) / 5
	assert.InDelta(t, 160.0, p.AverageBuyPrice, 1e-9)
	assert.Equal(t, "2024-02-10", p.LastPurchaseDate)
}

func TestAggregatePortfolio_OrderIndependentTotals(t *testing.T) {
	a := WalletEntry{ID: "1", CoinID: "eth", Quantity: 1.5, BuyDate: "2024-01-01", BuyPrice: 10}
	b := WalletEntry{ID: "2", CoinID: "eth", Quantity: 2.5, BuyDate: "2024-01-02", BuyPrice: 30}
	c := WalletEntry{ID: "3", CoinID: "eth", Quantity: 1, BuyDate: "2024-01-03", BuyPrice: 20}

	first := AggregatePortfolio([]WalletEntry{a, b, c})
	second := AggregatePortfolio([]WalletEntry{c, a, b})

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].Quantity, second[0].Quantity)
	assert.InDelta(t, first[0].AverageBuyPrice, second[0].AverageBuyPrice, 1e-9)
	// Last-processed open buy wins the date, so that one may differ.
	assert.Equal(t, "2024-01-03", first[0].LastPurchaseDate)
	assert.Equal(t, "2024-01-02", second[0].LastPurchaseDate)
}

func TestAggregatePortfolio_ClosedLotExclusion(t *testing.T) {
	entries := []WalletEntry{
		{ID: "1", CoinID: "bitcoin", Quantity: 2, BuyDate: "2024-01-01", BuyPrice: 10},
		{ID: "2", CoinID: "bitcoin", Quantity: 2, BuyDate: "2024-01-01", BuyPrice: 10,
			SellDate: "2024-02-01", SellPrice: floatPtr(15)},
	}

	// The closed entry subtracts its quantity, netting the coin to zero.
	positions := AggregatePortfolio(entries)
	assert.Empty(t, positions)
}

func TestAggregatePortfolio_ClosedEntriesAddNoCost(t *testing.T) {
	entries := []WalletEntry{
		{ID: "1", CoinID: "sol", Quantity: 4, BuyDate: "2024-01-01", BuyPrice: 100},
		{ID: "2", CoinID: "sol", Quantity: 2, BuyDate: "2024-01-02", BuyPrice: 50,
			SellDate: "2024-03-01", SellPrice: floatPtr(70)},
	}

	positions := AggregatePortfolio(entries)
	require.Len(t, positions, 1)

	// 4 bought, 2 sold off; average comes from the open lot only.
	assert.Equal(t, 2.0, positions[0].Quantity)
	assert.InDelta(t, 200.0, positions[0].AverageBuyPrice, 1e-9) // 400 cost / 2 qty
}

func TestAggregatePortfolio_Idempotent(t *testing.T) {
	entries := []WalletEntry{
		{ID: "1", CoinID: "bitcoin", Quantity: 1, BuyDate: "2024-01-01", BuyPrice: 100},
		{ID: "2", CoinID: "eth", Quantity: 2, BuyDate: "2024-01-02", BuyPrice: 50},
	}

	first := AggregatePortfolio(entries)
	second := AggregatePortfolio(entries)
	assert.Equal(t, first, second)
}

func TestAggregatePortfolio_Empty(t *testing.T) {
	assert.Empty(t, AggregatePortfolio(nil))
}
