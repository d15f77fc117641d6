package repository

import (
	"cryptofolio-backend/internal/domain"
	"sync"
)

// InMemoryMarketRepository holds the latest market overview snapshot written
// by the refresher loop and read by HTTP and websocket delivery.
type InMemoryMarketRepository struct {
	markets []domain.Market
	mu      sync.RWMutex
}

func NewInMemoryMarketRepository() *InMemoryMarketRepository {
	return &InMemoryMarketRepository{
		markets: []domain.Market{},
	}
}

func (r *InMemoryMarketRepository) SaveMarkets(markets []domain.Market) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Replace the entire snapshot; the refresher fetches full pages at once.
	r.markets = markets
}

func (r *InMemoryMarketRepository) GetMarkets() []domain.Market {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.Market, len(r.markets))
	copy(result, r.markets)
	return result
}
