package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"cryptofolio-backend/internal/domain"
	"cryptofolio-backend/internal/infrastructure/fcm"
	"cryptofolio-backend/internal/repository"
)

// AlertInput carries a new price alert before an id is assigned.
type AlertInput struct {
	CoinID   string  `json:"coinId"`
	CoinName string  `json:"coinName"`
	MinPrice float64 `json:"minPrice"`
	MaxPrice float64 `json:"maxPrice"`
}

// AlertsUsecase manages price alerts and runs the background checker that
// pushes a notification when a coin's spot price leaves its alert range.
type AlertsUsecase struct {
	repo      domain.AlertRepository
	prices    domain.PriceSource
	fcmClient *fcm.Client
	tokenRepo *repository.TokenRepository
	currency  string
	interval  time.Duration

	mu       sync.RWMutex
	notified map[string]time.Time // alert id -> last notification
}

func NewAlertsUsecase(repo domain.AlertRepository, prices domain.PriceSource, fcmClient *fcm.Client, tokenRepo *repository.TokenRepository, currency string) *AlertsUsecase {
	if currency == "" {
		currency = "usd"
	}
	return &AlertsUsecase{
		repo:      repo,
		prices:    prices,
		fcmClient: fcmClient,
		tokenRepo: tokenRepo,
		currency:  currency,
		interval:  time.Minute,
		notified:  make(map[string]time.Time),
	}
}

// List returns the user's alerts, newest first.
func (uc *AlertsUsecase) List(ctx context.Context, userID string) ([]domain.Alert, error) {
	return uc.repo.List(ctx, userID)
}

// Add validates and stores a new alert.
func (uc *AlertsUsecase) Add(ctx context.Context, userID string, input AlertInput) (domain.Alert, error) {
	alert := domain.Alert{
		ID:       domain.NewID(),
		CoinID:   input.CoinID,
		CoinName: input.CoinName,
		MinPrice: input.MinPrice,
		MaxPrice: input.MaxPrice,
	}
	if err := alert.Validate(); err != nil {
		return domain.Alert{}, err
	}

	current, err := uc.repo.List(ctx, userID)
	if err != nil {
		return domain.Alert{}, err
	}
	alerts := append([]domain.Alert{alert}, current...)
	if err := uc.repo.Save(ctx, userID, alerts); err != nil {
		return domain.Alert{}, err
	}
	return alert, nil
}

// Remove deletes the alert with the given id.
func (uc *AlertsUsecase) Remove(ctx context.Context, userID, id string) error {
	current, err := uc.repo.List(ctx, userID)
	if err != nil {
		return err
	}
	kept := make([]domain.Alert, 0, len(current))
	for _, a := range current {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(current) {
		return fmt.Errorf("%w: alert %s", domain.ErrNotFound, id)
	}
	return uc.repo.Save(ctx, userID, kept)
}

// Run starts the checker loop.
func (uc *AlertsUsecase) Run(ctx context.Context) {
	ticker := time.NewTicker(uc.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go uc.check(ctx)
		}
	}
}

func (uc *AlertsUsecase) check(ctx context.Context) {
	if uc.fcmClient == nil || !uc.fcmClient.IsEnabled() {
		return // no push channel configured
	}
	tokens := uc.tokenRepo.GetAllTokens()
	if len(tokens) == 0 {
		return // no registered devices
	}

	all, err := uc.repo.All(ctx)
	if err != nil {
		log.Printf("Error loading alerts: %v", err)
		return
	}
	if len(all) == 0 {
		return
	}

	seen := make(map[string]bool)
	var coinIDs []string
	for _, alerts := range all {
		for _, a := range alerts {
			if !seen[a.CoinID] {
				seen[a.CoinID] = true
				coinIDs = append(coinIDs, a.CoinID)
			}
		}
	}

	prices, err := uc.prices.GetSpotPrices(ctx, coinIDs, uc.currency)
	if err != nil {
		log.Printf("Error fetching alert prices: %v", err)
		return
	}

	now := time.Now()
	cooldownDuration := 5 * time.Minute

	for _, alerts := range all {
		for _, alert := range alerts {
			price, ok := prices[alert.CoinID]
			if !ok || price == 0 || !alert.Triggered(price) {
				continue
			}

			uc.mu.RLock()
			lastNotified, exists := uc.notified[alert.ID]
			uc.mu.RUnlock()
			if exists && now.Sub(lastNotified) < cooldownDuration {
				continue // still in cooldown
			}

			name := alert.CoinName
			if name == "" {
				name = alert.CoinID
			}
			var title string
			if price > alert.MaxPrice {
				title = fmt.Sprintf("%s above target", name)
			} else {
				title = fmt.Sprintf("%s below target", name)
			}
			body := fmt.Sprintf("Price: %.2f %s | Range: %.2f - %.2f",
				price, uc.currency, alert.MinPrice, alert.MaxPrice)
			data := map[string]string{
				"coinId": alert.CoinID,
				"price":  fmt.Sprintf("%.8f", price),
			}

			if err := uc.fcmClient.SendMulticast(ctx, tokens, title, body, data); err != nil {
				log.Printf("Error sending alert notification: %v", err)
				continue
			}

			uc.mu.Lock()
			uc.notified[alert.ID] = now
			uc.mu.Unlock()
		}
	}
}
