package repository

import (
	"context"
	"sync"

	"cryptofolio-backend/internal/domain"
)

// InMemoryWalletRepository keeps each user's wallet in memory. Used in dev
// and tests; state is lost on restart.
type InMemoryWalletRepository struct {
	mu      sync.RWMutex
	wallets map[string][]domain.WalletEntry
}

func NewInMemoryWalletRepository() *InMemoryWalletRepository {
	return &InMemoryWalletRepository{
		wallets: make(map[string][]domain.WalletEntry),
	}
}

func (r *InMemoryWalletRepository) Load(ctx context.Context, userID string) ([]domain.WalletEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]domain.WalletEntry, len(r.wallets[userID]))
	copy(entries, r.wallets[userID])
	return entries, nil
}

func (r *InMemoryWalletRepository) Save(ctx context.Context, userID string, entries []domain.WalletEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]domain.WalletEntry, len(entries))
	copy(stored, entries)
	r.wallets[userID] = stored
	return nil
}
