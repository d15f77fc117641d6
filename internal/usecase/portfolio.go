package usecase

import (
	"context"
	"fmt"

	"cryptofolio-backend/internal/domain"
)

// PortfolioUsecase derives read-only views from the wallet: current
// positions, the headline summary and the cumulative P&L series. All are
// pure recomputations over the transaction list, nothing here is stored.
type PortfolioUsecase struct {
	wallet *WalletUsecase
	prices domain.PriceSource
}

func NewPortfolioUsecase(wallet *WalletUsecase, prices domain.PriceSource) *PortfolioUsecase {
	return &PortfolioUsecase{wallet: wallet, prices: prices}
}

// Positions aggregates the wallet into net per-coin holdings.
func (uc *PortfolioUsecase) Positions(ctx context.Context, userID string) ([]domain.PortfolioPosition, error) {
	entries, err := uc.wallet.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.AggregatePortfolio(entries), nil
}

// Summary values the wallet against current spot prices.
func (uc *PortfolioUsecase) Summary(ctx context.Context, userID, currency string) (domain.WalletSummary, error) {
	entries, err := uc.wallet.List(ctx, userID)
	if err != nil {
		return domain.WalletSummary{}, err
	}
	prices, err := uc.spotPrices(ctx, entries, currency)
	if err != nil {
		return domain.WalletSummary{}, err
	}
	return domain.SummarizeWallet(entries, prices), nil
}

// PnLSeries replays the wallet into the cumulative realized/unrealized
// series, valued against a single current spot snapshot.
func (uc *PortfolioUsecase) PnLSeries(ctx context.Context, userID, currency string) ([]domain.PnLPoint, error) {
	entries, err := uc.wallet.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	prices, err := uc.spotPrices(ctx, entries, currency)
	if err != nil {
		return nil, err
	}
	return domain.ComputePnLSeries(entries, prices), nil
}

func (uc *PortfolioUsecase) spotPrices(ctx context.Context, entries []domain.WalletEntry, currency string) (map[string]float64, error) {
	if currency == "" {
		currency = "usd"
	}
	if len(entries) == 0 {
		return map[string]float64{}, nil
	}

	seen := make(map[string]bool)
	var coinIDs []string
	for _, e := range entries {
		if !seen[e.CoinID] {
			seen[e.CoinID] = true
			coinIDs = append(coinIDs, e.CoinID)
		}
	}

	prices, err := uc.prices.GetSpotPrices(ctx, coinIDs, currency)
	if err != nil {
		return nil, fmt.Errorf("fetch spot prices: %w", err)
	}
	return prices, nil
}
