package repository

import (
	"context"
	"sync"

	"cryptofolio-backend/internal/domain"
)

// InMemoryAlertRepository keeps each user's price alerts in memory.
type InMemoryAlertRepository struct {
	mu     sync.RWMutex
	alerts map[string][]domain.Alert
}

func NewInMemoryAlertRepository() *InMemoryAlertRepository {
	return &InMemoryAlertRepository{
		alerts: make(map[string][]domain.Alert),
	}
}

func (r *InMemoryAlertRepository) List(ctx context.Context, userID string) ([]domain.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	alerts := make([]domain.Alert, len(r.alerts[userID]))
	copy(alerts, r.alerts[userID])
	return alerts, nil
}

func (r *InMemoryAlertRepository) Save(ctx context.Context, userID string, alerts []domain.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]domain.Alert, len(alerts))
	copy(stored, alerts)
	r.alerts[userID] = stored
	return nil
}

func (r *InMemoryAlertRepository) All(ctx context.Context) (map[string][]domain.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make(map[string][]domain.Alert, len(r.alerts))
	for userID, alerts := range r.alerts {
		copied := make([]domain.Alert, len(alerts))
		copy(copied, alerts)
		all[userID] = copied
	}
	return all, nil
}
