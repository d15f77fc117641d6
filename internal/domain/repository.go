package domain

import "context"

// WalletRepository persists a user's full wallet as one document. Saves
// replace the whole list; the last writer wins.
type WalletRepository interface {
	Load(ctx context.Context, userID string) ([]WalletEntry, error)
	Save(ctx context.Context, userID string, entries []WalletEntry) error
}

// AlertRepository persists a user's price alerts. All returns every user's
// alerts for the background checker.
type AlertRepository interface {
	List(ctx context.Context, userID string) ([]Alert, error)
	Save(ctx context.Context, userID string, alerts []Alert) error
	All(ctx context.Context) (map[string][]Alert, error)
}

// FavoriteRepository persists a user's favorite coin ids.
type FavoriteRepository interface {
	List(ctx context.Context, userID string) ([]string, error)
	Save(ctx context.Context, userID string, coinIDs []string) error
}

// MarketRepository holds the latest market overview snapshot for delivery.
type MarketRepository interface {
	SaveMarkets(markets []Market)
	GetMarkets() []Market
}

// PriceSource is the slice of the price API the derivation usecases need.
type PriceSource interface {
	GetSpotPrices(ctx context.Context, coinIDs []string, currency string) (map[string]float64, error)
	GetHistoricalPrice(ctx context.Context, coinID, date, currency string) (float64, error)
}

// MarketSource is the slice of the price API the market and chart usecases
// need.
type MarketSource interface {
	GetMarkets(ctx context.Context, currency string, page, perPage int, sparkline bool) ([]Market, error)
	GetMarketChart(ctx context.Context, coinID, currency string, days int) ([]PricePoint, error)
	Search(ctx context.Context, query string) ([]CoinMatch, error)
}
