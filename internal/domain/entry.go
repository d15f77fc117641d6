package domain

import (
	"fmt"
	"time"
)

// WalletEntry represents a single buy transaction, optionally closed out by a
// later sell. Dates are calendar dates in YYYY-MM-DD form so that
// lexicographic order is chronological order.
type WalletEntry struct {
	ID        string   `json:"id" firestore:"id"`
	CoinID    string   `json:"coinId" firestore:"coinId"`
	CoinName  string   `json:"coinName" firestore:"coinName"`
	Symbol    string   `json:"symbol" firestore:"symbol"`
	Quantity  float64  `json:"quantity" firestore:"quantity"`
	BuyDate   string   `json:"buyDate" firestore:"buyDate"`
	BuyPrice  float64  `json:"buyPrice" firestore:"buyPrice"`
	SellDate  string   `json:"sellDate,omitempty" firestore:"sellDate,omitempty"`
	SellPrice *float64 `json:"sellPrice,omitempty" firestore:"sellPrice,omitempty"`
}

// EntryPatch carries the fields of a partial edit. Nil fields are left as-is.
type EntryPatch struct {
	CoinID    *string  `json:"coinId,omitempty"`
	CoinName  *string  `json:"coinName,omitempty"`
	Symbol    *string  `json:"symbol,omitempty"`
	Quantity  *float64 `json:"quantity,omitempty"`
	BuyDate   *string  `json:"buyDate,omitempty"`
	BuyPrice  *float64 `json:"buyPrice,omitempty"`
	SellDate  *string  `json:"sellDate,omitempty"`
	SellPrice *float64 `json:"sellPrice,omitempty"`
}

const dateLayout = "2006-01-02"

// NewID returns a timestamp-derived identifier for a new wallet entry or
// alert. Assigned once at creation, never reused.
func NewID() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

// Closed reports whether the entry is a completed round trip. An entry is
// closed only when both sell fields are present.
func (e WalletEntry) Closed() bool {
	return e.SellDate != "" && e.SellPrice != nil
}

// Apply merges a patch into a copy of the entry and returns it.
func (e WalletEntry) Apply(p EntryPatch) WalletEntry {
	if p.CoinID != nil {
		e.CoinID = *p.CoinID
	}
	if p.CoinName != nil {
		e.CoinName = *p.CoinName
	}
	if p.Symbol != nil {
		e.Symbol = *p.Symbol
	}
	if p.Quantity != nil {
		e.Quantity = *p.Quantity
	}
	if p.BuyDate != nil {
		e.BuyDate = *p.BuyDate
	}
	if p.BuyPrice != nil {
		e.BuyPrice = *p.BuyPrice
	}
	if p.SellDate != nil {
		e.SellDate = *p.SellDate
	}
	if p.SellPrice != nil {
		e.SellPrice = p.SellPrice
	}
	return e
}

// Validate checks the entry invariants: positive quantity, non-negative buy
// price, a well-formed buy date, and sell fields that are either both present
// or both absent. A closed entry must not sell before it was bought.
func (e WalletEntry) Validate() error {
	if e.CoinID == "" {
		return fmt.Errorf("%w: coin id is required", ErrValidation)
	}
	if e.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if e.BuyPrice < 0 {
		return fmt.Errorf("%w: buy price must not be negative", ErrValidation)
	}
	if err := validDate(e.BuyDate); err != nil {
		return fmt.Errorf("%w: invalid buy date %q", ErrValidation, e.BuyDate)
	}
	hasSellDate := e.SellDate != ""
	hasSellPrice := e.SellPrice != nil
	if hasSellDate != hasSellPrice {
		return fmt.Errorf("%w: sell date and sell price must be set together", ErrValidation)
	}
	if hasSellDate {
		if err := validDate(e.SellDate); err != nil {
			return fmt.Errorf("%w: invalid sell date %q", ErrValidation, e.SellDate)
		}
		if *e.SellPrice < 0 {
			return fmt.Errorf("%w: sell price must not be negative", ErrValidation)
		}
		if e.SellDate < e.BuyDate {
			return fmt.Errorf("%w: sell date before buy date", ErrValidation)
		}
	}
	return nil
}

func validDate(s string) error {
	_, err := time.Parse(dateLayout, s)
	return err
}
