package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEntry() WalletEntry {
	return WalletEntry{
		ID:       "1",
		CoinID:   "bitcoin",
		CoinName: "Bitcoin",
		Symbol:   "BTC",
		Quantity: 1.5,
		BuyDate:  "2024-01-15",
		BuyPrice: 42000,
	}
}

func TestWalletEntry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*WalletEntry)
		wantErr bool
	}{
		{name: "valid open entry", mutate: func(e *WalletEntry) {}},
		{name: "valid closed entry", mutate: func(e *WalletEntry) {
			e.SellDate = "2024-02-01"
			e.SellPrice = floatPtr(45000)
		}},
		{name: "missing coin id", mutate: func(e *WalletEntry) { e.CoinID = "" }, wantErr: true},
		{name: "zero quantity", mutate: func(e *WalletEntry) { e.Quantity = 0 }, wantErr: true},
		{name: "negative quantity", mutate: func(e *WalletEntry) { e.Quantity = -1 }, wantErr: true},
		{name: "negative buy price", mutate: func(e *WalletEntry) { e.BuyPrice = -1 }, wantErr: true},
		{name: "malformed buy date", mutate: func(e *WalletEntry) { e.BuyDate = "15/01/2024" }, wantErr: true},
		{name: "empty buy date", mutate: func(e *WalletEntry) { e.BuyDate = "" }, wantErr: true},
		{name: "sell date without price", mutate: func(e *WalletEntry) { e.SellDate = "2024-02-01" }, wantErr: true},
		{name: "sell price without date", mutate: func(e *WalletEntry) { e.SellPrice = floatPtr(45000) }, wantErr: true},
		{name: "malformed sell date", mutate: func(e *WalletEntry) {
			e.SellDate = "2024-13-40"
			e.SellPrice = floatPtr(45000)
		}, wantErr: true},
		{name: "negative sell price", mutate: func(e *WalletEntry) {
			e.SellDate = "2024-02-01"
			e.SellPrice = floatPtr(-5)
		}, wantErr: true},
		{name: "sell before buy", mutate: func(e *WalletEntry) {
			e.SellDate = "2024-01-01"
			e.SellPrice = floatPtr(45000)
		}, wantErr: true},
		{name: "sell on buy date", mutate: func(e *WalletEntry) {
			e.SellDate = "2024-01-15"
			e.SellPrice = floatPtr(45000)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEntry()
			tt.mutate(&e)
			err := e.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWalletEntry_Closed(t *testing.T) {
	e := validEntry()
	assert.False(t, e.Closed())

	e.SellDate = "2024-02-01"
	assert.False(t, e.Closed(), "date alone does not close an entry")

	e.SellPrice = floatPtr(45000)
	assert.True(t, e.Closed())
}

func TestWalletEntry_Apply(t *testing.T) {
	e := validEntry()

	qty := 3.0
	sellDate := "2024-03-01"
	sellPrice := 50000.0
	patched := e.Apply(EntryPatch{
		Quantity:  &qty,
		SellDate:  &sellDate,
		SellPrice: &sellPrice,
	})

	assert.Equal(t, 3.0, patched.Quantity)
	assert.Equal(t, "2024-03-01", patched.SellDate)
	require.NotNil(t, patched.SellPrice)
	assert.Equal(t, 50000.0, *patched.SellPrice)

	// Untouched fields survive, and the original is not mutated.
	assert.Equal(t, "bitcoin", patched.CoinID)
	assert.Equal(t, 1.5, e.Quantity)
	assert.Empty(t, e.SellDate)
}

func TestNewID_Distinct(t *testing.T) {
	a := NewID()
	b := NewID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
