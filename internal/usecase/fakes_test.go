package usecase

import (
	"context"
	"fmt"
	"sync"

	"cryptofolio-backend/internal/domain"
)

// fakePrices serves canned spot and historical prices. Historical
// prices are keyed as "coinID/date"; histCalls counts lookups so tests can
// assert when the price API is never consulted.
type fakePrices struct {
	spot       map[string]float64
	historical map[string]float64
	spotErr    error
	histCalls  int
}

func (f *fakePrices) GetSpotPrices(ctx context.Context, coinIDs []string, currency string) (map[string]float64, error) {
	if f.spotErr != nil {
		return nil, f.spotErr
	}
	out := make(map[string]float64, len(coinIDs))
	for _, id := range coinIDs {
		out[id] = f.spot[id]
	}
	return out, nil
}

func (f *fakePrices) GetHistoricalPrice(ctx context.Context, coinID, date, currency string) (float64, error) {
	f.histCalls++
	price, ok := f.historical[coinID+"/"+date]
	if !ok {
		return 0, fmt.Errorf("%w: no price for %s on %s", domain.ErrPriceUnavailable, coinID, date)
	}
	return price, nil
}

// fakeMarketSource serves canned markets and chart series, counting chart
// calls so tests can assert how often the upstream is hit.
type fakeMarketSource struct {
	mu         sync.Mutex
	markets    []domain.Market
	charts     map[int][]domain.PricePoint // keyed by days
	matches    []domain.CoinMatch
	chartCalls int
	marketsErr error
}

func (f *fakeMarketSource) GetMarkets(ctx context.Context, currency string, page, perPage int, sparkline bool) ([]domain.Market, error) {
	if f.marketsErr != nil {
		return nil, f.marketsErr
	}
	return f.markets, nil
}

func (f *fakeMarketSource) GetMarketChart(ctx context.Context, coinID, currency string, days int) ([]domain.PricePoint, error) {
	f.mu.Lock()
	f.chartCalls++
	f.mu.Unlock()
	return f.charts[days], nil
}

func (f *fakeMarketSource) Search(ctx context.Context, query string) ([]domain.CoinMatch, error) {
	return f.matches, nil
}

// failingWalletRepo loads fine but refuses every save.
type failingWalletRepo struct {
	entries []domain.WalletEntry
}

func (r *failingWalletRepo) Load(ctx context.Context, userID string) ([]domain.WalletEntry, error) {
	return append([]domain.WalletEntry(nil), r.entries...), nil
}

func (r *failingWalletRepo) Save(ctx context.Context, userID string, entries []domain.WalletEntry) error {
	return fmt.Errorf("%w: save rejected", domain.ErrUpstream)
}
