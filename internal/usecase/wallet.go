package usecase

import (
	"context"
	"fmt"
	"sync"

	"cryptofolio-backend/internal/domain"
)

// AddEntryInput carries a new wallet entry before prices are resolved. A nil
// BuyPrice (or a sell date with a nil SellPrice) is filled from the
// historical price for that date; if no price exists the add is aborted and
// nothing is stored.
type AddEntryInput struct {
	CoinID    string   `json:"coinId"`
	CoinName  string   `json:"coinName"`
	Symbol    string   `json:"symbol"`
	Quantity  float64  `json:"quantity"`
	BuyDate   string   `json:"buyDate"`
	BuyPrice  *float64 `json:"buyPrice,omitempty"`
	SellDate  string   `json:"sellDate,omitempty"`
	SellPrice *float64 `json:"sellPrice,omitempty"`
	Currency  string   `json:"currency,omitempty"`
}

// WalletUsecase owns the per-user transaction list. Every mutation validates
// first, then persists the whole list; the in-memory copy is only updated
// after a successful save, so a failed save leaves prior state intact.
type WalletUsecase struct {
	repo   domain.WalletRepository
	prices domain.PriceSource

	mu     sync.RWMutex
	loaded map[string][]domain.WalletEntry
}

func NewWalletUsecase(repo domain.WalletRepository, prices domain.PriceSource) *WalletUsecase {
	return &WalletUsecase{
		repo:   repo,
		prices: prices,
		loaded: make(map[string][]domain.WalletEntry),
	}
}

// List returns the user's wallet, newest entry first.
func (uc *WalletUsecase) List(ctx context.Context, userID string) ([]domain.WalletEntry, error) {
	uc.mu.RLock()
	entries, ok := uc.loaded[userID]
	uc.mu.RUnlock()
	if ok {
		return copyEntries(entries), nil
	}

	entries, err := uc.repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	uc.loaded[userID] = entries
	uc.mu.Unlock()
	return copyEntries(entries), nil
}

// Add creates an entry from the input, resolving missing prices from the
// historical price API, and prepends it to the wallet.
func (uc *WalletUsecase) Add(ctx context.Context, userID string, input AddEntryInput) (domain.WalletEntry, error) {
	currency := input.Currency
	if currency == "" {
		currency = "usd"
	}

	entry := domain.WalletEntry{
		ID:        domain.NewID(),
		CoinID:    input.CoinID,
		CoinName:  input.CoinName,
		Symbol:    input.Symbol,
		Quantity:  input.Quantity,
		BuyDate:   input.BuyDate,
		SellDate:  input.SellDate,
		SellPrice: input.SellPrice,
	}
	if input.BuyPrice != nil {
		entry.BuyPrice = *input.BuyPrice
	}

	// Reject bad input before spending a price API call on it. Prices still
	// to be filled stand in as zero, which validation accepts.
	draft := entry
	if entry.SellDate != "" && entry.SellPrice == nil {
		var pending float64
		draft.SellPrice = &pending
	}
	if err := draft.Validate(); err != nil {
		return domain.WalletEntry{}, err
	}

	if input.BuyPrice == nil {
		price, err := uc.prices.GetHistoricalPrice(ctx, input.CoinID, input.BuyDate, currency)
		if err != nil {
			return domain.WalletEntry{}, fmt.Errorf("resolve buy price: %w", err)
		}
		entry.BuyPrice = price
	}

	if input.SellDate != "" && input.SellPrice == nil {
		price, err := uc.prices.GetHistoricalPrice(ctx, input.CoinID, input.SellDate, currency)
		if err != nil {
			return domain.WalletEntry{}, fmt.Errorf("resolve sell price: %w", err)
		}
		entry.SellPrice = &price
	}

	if err := entry.Validate(); err != nil {
		return domain.WalletEntry{}, err
	}

	current, err := uc.List(ctx, userID)
	if err != nil {
		return domain.WalletEntry{}, err
	}

	entries := append([]domain.WalletEntry{entry}, current...)
	if err := uc.persist(ctx, userID, entries); err != nil {
		return domain.WalletEntry{}, err
	}
	return entry, nil
}

// Edit merges a partial patch into the entry with the given id.
func (uc *WalletUsecase) Edit(ctx context.Context, userID, id string, patch domain.EntryPatch) (domain.WalletEntry, error) {
	current, err := uc.List(ctx, userID)
	if err != nil {
		return domain.WalletEntry{}, err
	}

	idx := -1
	for i, e := range current {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.WalletEntry{}, fmt.Errorf("%w: entry %s", domain.ErrNotFound, id)
	}

	updated := current[idx].Apply(patch)
	if err := updated.Validate(); err != nil {
		return domain.WalletEntry{}, err
	}

	current[idx] = updated
	if err := uc.persist(ctx, userID, current); err != nil {
		return domain.WalletEntry{}, err
	}
	return updated, nil
}

// Remove deletes the entry with the given id.
func (uc *WalletUsecase) Remove(ctx context.Context, userID, id string) error {
	current, err := uc.List(ctx, userID)
	if err != nil {
		return err
	}

	entries := make([]domain.WalletEntry, 0, len(current))
	for _, e := range current {
		if e.ID != id {
			entries = append(entries, e)
		}
	}
	if len(entries) == len(current) {
		return fmt.Errorf("%w: entry %s", domain.ErrNotFound, id)
	}
	return uc.persist(ctx, userID, entries)
}

func (uc *WalletUsecase) persist(ctx context.Context, userID string, entries []domain.WalletEntry) error {
	if err := uc.repo.Save(ctx, userID, entries); err != nil {
		return err
	}
	uc.mu.Lock()
	uc.loaded[userID] = entries
	uc.mu.Unlock()
	return nil
}

func copyEntries(entries []domain.WalletEntry) []domain.WalletEntry {
	out := make([]domain.WalletEntry, len(entries))
	copy(out, entries)
	return out
}
