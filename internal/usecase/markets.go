package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"cryptofolio-backend/internal/domain"
)

// MarketsUsecase keeps the market overview snapshot warm and manages
// per-user favorites.
type MarketsUsecase struct {
	repo     domain.MarketRepository
	source   domain.MarketSource
	favs     domain.FavoriteRepository
	currency string
	interval time.Duration
	gens     *generationCounter
}

func NewMarketsUsecase(repo domain.MarketRepository, source domain.MarketSource, favs domain.FavoriteRepository, currency string) *MarketsUsecase {
	if currency == "" {
		currency = "usd"
	}
	return &MarketsUsecase{
		repo:     repo,
		source:   source,
		favs:     favs,
		currency: currency,
		interval: time.Minute,
		gens:     newGenerationCounter(),
	}
}

// Run starts the refresh loop.
func (uc *MarketsUsecase) Run(ctx context.Context) {
	ticker := time.NewTicker(uc.interval)
	defer ticker.Stop()

	// Initial run
	go uc.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go uc.refresh(ctx)
		}
	}
}

func (uc *MarketsUsecase) refresh(ctx context.Context) {
	start := time.Now()
	gen := uc.gens.Begin("markets")

	markets, err := uc.source.GetMarkets(ctx, uc.currency, 1, 100, false)
	if err != nil {
		log.Printf("Error refreshing markets: %v", err)
		return
	}

	// A newer refresh may have finished first; only the latest snapshot lands.
	if !uc.gens.Publish("markets", gen, func() { uc.repo.SaveMarkets(markets) }) {
		return
	}
	log.Printf("Market snapshot refreshed: %d coins in %v", len(markets), time.Since(start))
}

// Markets returns the current snapshot, fetching synchronously if the
// refresher has not populated it yet.
func (uc *MarketsUsecase) Markets(ctx context.Context) ([]domain.Market, error) {
	markets := uc.repo.GetMarkets()
	if len(markets) > 0 {
		return markets, nil
	}

	markets, err := uc.source.GetMarkets(ctx, uc.currency, 1, 100, false)
	if err != nil {
		return nil, err
	}
	uc.repo.SaveMarkets(markets)
	return markets, nil
}

// Search queries the coin index by name or symbol.
func (uc *MarketsUsecase) Search(ctx context.Context, query string) ([]domain.CoinMatch, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrValidation)
	}
	return uc.source.Search(ctx, query)
}

// Chart returns the raw price series for a coin.
func (uc *MarketsUsecase) Chart(ctx context.Context, coinID, currency string, days int) ([]domain.PricePoint, error) {
	if coinID == "" {
		return nil, fmt.Errorf("%w: coin id is required", domain.ErrValidation)
	}
	if currency == "" {
		currency = uc.currency
	}
	if days <= 0 {
		days = 7
	}
	return uc.source.GetMarketChart(ctx, coinID, currency, days)
}

// Favorites returns a user's favorite coin ids.
func (uc *MarketsUsecase) Favorites(ctx context.Context, userID string) ([]string, error) {
	return uc.favs.List(ctx, userID)
}

// AddFavorite adds a coin to the user's favorites. Adding twice is a no-op.
func (uc *MarketsUsecase) AddFavorite(ctx context.Context, userID, coinID string) error {
	if coinID == "" {
		return fmt.Errorf("%w: coin id is required", domain.ErrValidation)
	}
	favorites, err := uc.favs.List(ctx, userID)
	if err != nil {
		return err
	}
	for _, id := range favorites {
		if id == coinID {
			return nil
		}
	}
	return uc.favs.Save(ctx, userID, append(favorites, coinID))
}

// RemoveFavorite removes a coin from the user's favorites.
func (uc *MarketsUsecase) RemoveFavorite(ctx context.Context, userID, coinID string) error {
	favorites, err := uc.favs.List(ctx, userID)
	if err != nil {
		return err
	}
	kept := make([]string, 0, len(favorites))
	for _, id := range favorites {
		if id != coinID {
			kept = append(kept, id)
		}
	}
	if len(kept) == len(favorites) {
		return fmt.Errorf("%w: favorite %s", domain.ErrNotFound, coinID)
	}
	return uc.favs.Save(ctx, userID, kept)
}
