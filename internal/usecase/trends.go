package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"cryptofolio-backend/internal/domain"
	"cryptofolio-backend/internal/infrastructure/forecast"
)

const (
	ModelNone          = "none"
	ModelLinear        = "linear"
	ModelMovingAverage = "movingAverage"

	// Forecasts need some history to be worth drawing.
	minForecastPoints = 10

	defaultForecastDays = 7
)

// ChartRequest selects a price series and an optional forecast overlay.
type ChartRequest struct {
	CoinID       string
	Currency     string
	Days         int
	Model        string
	ForecastDays int
}

// ChartResult is the series plus the forecast continuation.
type ChartResult struct {
	CoinID   string              `json:"coinId"`
	Currency string              `json:"currency"`
	Days     int                 `json:"days"`
	Series   []domain.PricePoint `json:"series"`
	Model    string              `json:"model,omitempty"`
	Forecast []forecast.Point    `json:"forecast,omitempty"`
	StdError float64             `json:"stdError,omitempty"`
}

// TrendsUsecase serves price charts with trend-line overlays and the
// performance overview. The latest result per coin/currency is kept for the
// websocket stream, guarded by a generation counter so an in-flight fetch
// that finishes late cannot clobber a newer one.
type TrendsUsecase struct {
	source domain.MarketSource
	gens   *generationCounter

	mu     sync.RWMutex
	latest map[string]ChartResult
}

func NewTrendsUsecase(source domain.MarketSource) *TrendsUsecase {
	return &TrendsUsecase{
		source: source,
		gens:   newGenerationCounter(),
		latest: make(map[string]ChartResult),
	}
}

// GetChart fetches the requested series and, for linear and moving-average
// models, fits the forecast over a year of daily prices the way the
// dashboard chart does.
func (uc *TrendsUsecase) GetChart(ctx context.Context, req ChartRequest) (ChartResult, error) {
	if req.CoinID == "" {
		return ChartResult{}, fmt.Errorf("%w: coin id is required", domain.ErrValidation)
	}
	if req.Currency == "" {
		req.Currency = "usd"
	}
	if req.Days <= 0 {
		req.Days = 7
	}
	if req.Model == "" {
		req.Model = ModelNone
	}
	if req.ForecastDays <= 0 {
		req.ForecastDays = defaultForecastDays
	}

	key := req.CoinID + "/" + req.Currency
	gen := uc.gens.Begin(key)

	series, err := uc.source.GetMarketChart(ctx, req.CoinID, req.Currency, req.Days)
	if err != nil {
		return ChartResult{}, err
	}

	result := ChartResult{
		CoinID:   req.CoinID,
		Currency: req.Currency,
		Days:     req.Days,
		Series:   series,
		Model:    req.Model,
	}

	switch req.Model {
	case ModelNone:
	case ModelLinear, ModelMovingAverage:
		// Forecasts always fit over a year of daily data, regardless of the
		// displayed range.
		history, err := uc.source.GetMarketChart(ctx, req.CoinID, req.Currency, 365)
		if err != nil {
			return ChartResult{}, err
		}
		if len(history) >= minForecastPoints {
			points := indexSeries(history)
			if req.Model == ModelLinear {
				lr := forecast.LinearRegression(points, req.ForecastDays)
				result.Forecast = lr.Forecast
				result.StdError = lr.StdError
			} else {
				window := 7
				if req.Days >= 365 {
					window = 30
				}
				result.Forecast = forecast.MovingAverage(points, window, req.ForecastDays)
			}
		}
	default:
		return ChartResult{}, fmt.Errorf("%w: unknown model %q", domain.ErrValidation, req.Model)
	}

	// A slower, older fetch must not overwrite a newer chart.
	uc.gens.Publish(key, gen, func() {
		uc.mu.Lock()
		uc.latest[key] = result
		uc.mu.Unlock()
	})
	return result, nil
}

// LatestChart returns the most recently applied chart for a coin/currency.
func (uc *TrendsUsecase) LatestChart(coinID, currency string) (ChartResult, bool) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	result, ok := uc.latest[coinID+"/"+currency]
	return result, ok
}

// Overview returns the top markets sorted by 7-day performance, sparklines
// included, for the trends page.
func (uc *TrendsUsecase) Overview(ctx context.Context, currency string) ([]domain.Market, error) {
	if currency == "" {
		currency = "usd"
	}
	markets, err := uc.source.GetMarkets(ctx, currency, 1, 10, true)
	if err != nil {
		return nil, err
	}
	sort.Slice(markets, func(i, j int) bool {
		return markets[i].PctChange7d > markets[j].PctChange7d
	})
	return markets, nil
}

func indexSeries(series []domain.PricePoint) []forecast.Point {
	points := make([]forecast.Point, len(series))
	for i, p := range series {
		points[i] = forecast.Point{X: float64(i), Y: p.Price}
	}
	return points
}
