package domain

import "fmt"

// Alert is a user-defined price range for a coin. The alert fires when the
// spot price leaves [MinPrice, MaxPrice].
type Alert struct {
	ID       string  `json:"id" firestore:"id"`
	CoinID   string  `json:"coinId" firestore:"coinId"`
	CoinName string  `json:"coinName" firestore:"coinName"`
	MinPrice float64 `json:"minPrice" firestore:"minPrice"`
	MaxPrice float64 `json:"maxPrice" firestore:"maxPrice"`
}

// Validate checks the alert invariants before it is stored.
func (a Alert) Validate() error {
	if a.CoinID == "" {
		return fmt.Errorf("%w: coin id is required", ErrValidation)
	}
	if a.MinPrice < 0 || a.MaxPrice < 0 {
		return fmt.Errorf("%w: prices must not be negative", ErrValidation)
	}
	if a.MinPrice > a.MaxPrice {
		return fmt.Errorf("%w: min price must not exceed max price", ErrValidation)
	}
	return nil
}

// Triggered reports whether the given spot price is outside the alert range.
func (a Alert) Triggered(price float64) bool {
	return price < a.MinPrice || price > a.MaxPrice
}
