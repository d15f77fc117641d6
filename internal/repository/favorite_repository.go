package repository

import (
	"context"
	"sync"
)

// InMemoryFavoriteRepository keeps each user's favorite coin ids in memory.
type InMemoryFavoriteRepository struct {
	mu        sync.RWMutex
	favorites map[string][]string
}

func NewInMemoryFavoriteRepository() *InMemoryFavoriteRepository {
	return &InMemoryFavoriteRepository{
		favorites: make(map[string][]string),
	}
}

func (r *InMemoryFavoriteRepository) List(ctx context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	coinIDs := make([]string, len(r.favorites[userID]))
	copy(coinIDs, r.favorites[userID])
	return coinIDs, nil
}

func (r *InMemoryFavoriteRepository) Save(ctx context.Context, userID string, coinIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]string, len(coinIDs))
	copy(stored, coinIDs)
	r.favorites[userID] = stored
	return nil
}
