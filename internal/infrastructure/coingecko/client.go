package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cryptofolio-backend/internal/domain"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// Client talks to the CoinGecko v3 API. The public tier is aggressively
// rate-limited, so every request goes through a shared limiter and GET
// responses are cached for a short while.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	cache      *gocache.Cache
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		// ~30 calls/min with a small burst, inside the public tier limit.
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 3),
		cache:   gocache.New(time.Minute, 5*time.Minute),
	}
}

type marketRow struct {
	ID           string  `json:"id"`
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	Image        string  `json:"image"`
	CurrentPrice float64 `json:"current_price"`
	MarketCap    float64 `json:"market_cap"`
	Rank         int     `json:"market_cap_rank"`
	TotalVolume  float64 `json:"total_volume"`
	PctChange24h float64 `json:"price_change_percentage_24h"`
	PctChange7d  float64 `json:"price_change_percentage_7d_in_currency"`
	Sparkline    *struct {
		Price []float64 `json:"price"`
	} `json:"sparkline_in_7d"`
}

type marketChart struct {
	Prices [][2]float64 `json:"prices"`
}

type historyResponse struct {
	MarketData *struct {
		CurrentPrice map[string]float64 `json:"current_price"`
	} `json:"market_data"`
}

type searchResponse struct {
	Coins []struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
		Rank   int    `json:"market_cap_rank"`
	} `json:"coins"`
}

// GetMarkets returns one page of the market overview ordered by market cap.
func (c *Client) GetMarkets(ctx context.Context, currency string, page, perPage int, sparkline bool) ([]domain.Market, error) {
	u := fmt.Sprintf("%s/coins/markets?vs_currency=%s&order=market_cap_desc&per_page=%d&page=%d&sparkline=%t&price_change_percentage=24h,7d",
		c.baseURL, url.QueryEscape(currency), perPage, page, sparkline)

	var rows []marketRow
	if err := c.getJSON(ctx, u, time.Minute, &rows); err != nil {
		return nil, err
	}

	markets := make([]domain.Market, 0, len(rows))
	for _, r := range rows {
		m := domain.Market{
			CoinID:        r.ID,
			Symbol:        r.Symbol,
			Name:          r.Name,
			Image:         r.Image,
			CurrentPrice:  r.CurrentPrice,
			MarketCap:     r.MarketCap,
			MarketCapRank: r.Rank,
			TotalVolume:   r.TotalVolume,
			PctChange24h:  r.PctChange24h,
			PctChange7d:   r.PctChange7d,
		}
		if r.Sparkline != nil {
			m.Sparkline7d = r.Sparkline.Price
		}
		markets = append(markets, m)
	}
	return markets, nil
}

// GetMarketChart returns the historical price series for a coin, one sample
// per hour for a single day, one per day otherwise.
func (c *Client) GetMarketChart(ctx context.Context, coinID, currency string, days int) ([]domain.PricePoint, error) {
	interval := "daily"
	if days == 1 {
		interval = "hourly"
	}
	u := fmt.Sprintf("%s/coins/%s/market_chart?vs_currency=%s&days=%d&interval=%s",
		c.baseURL, url.PathEscape(coinID), url.QueryEscape(currency), days, interval)

	var chart marketChart
	if err := c.getJSON(ctx, u, 5*time.Minute, &chart); err != nil {
		return nil, err
	}

	points := make([]domain.PricePoint, 0, len(chart.Prices))
	for _, p := range chart.Prices {
		points = append(points, domain.PricePoint{Timestamp: int64(p[0]), Price: p[1]})
	}
	return points, nil
}

// GetSpotPrices returns the current price of each coin in the given currency.
// Coins the API does not know come back as 0, matching how the dashboard
// treated missing quotes.
func (c *Client) GetSpotPrices(ctx context.Context, coinIDs []string, currency string) (map[string]float64, error) {
	if len(coinIDs) == 0 {
		return map[string]float64{}, nil
	}
	u := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=%s",
		c.baseURL, url.QueryEscape(strings.Join(coinIDs, ",")), url.QueryEscape(currency))

	var data map[string]map[string]float64
	if err := c.getJSON(ctx, u, time.Minute, &data); err != nil {
		return nil, err
	}

	cur := strings.ToLower(currency)
	prices := make(map[string]float64, len(coinIDs))
	for _, id := range coinIDs {
		prices[id] = data[id][cur]
	}
	return prices, nil
}

// GetHistoricalPrice returns the price of a coin on a calendar date
// (YYYY-MM-DD). CoinGecko wants dd-mm-yyyy. Dates with no market data yield
// domain.ErrPriceUnavailable.
func (c *Client) GetHistoricalPrice(ctx context.Context, coinID, date, currency string) (float64, error) {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: bad date %q", domain.ErrValidation, date)
	}
	formatted := fmt.Sprintf("%s-%s-%s", parts[2], parts[1], parts[0])
	u := fmt.Sprintf("%s/coins/%s/history?date=%s", c.baseURL, url.PathEscape(coinID), formatted)

	var hist historyResponse
	if err := c.getJSON(ctx, u, 24*time.Hour, &hist); err != nil {
		return 0, err
	}
	if hist.MarketData == nil {
		return 0, fmt.Errorf("%w: %s on %s", domain.ErrPriceUnavailable, coinID, date)
	}
	price, ok := hist.MarketData.CurrentPrice[strings.ToLower(currency)]
	if !ok {
		return 0, fmt.Errorf("%w: %s on %s in %s", domain.ErrPriceUnavailable, coinID, date, currency)
	}
	return price, nil
}

// Search queries the coin index by name or symbol.
func (c *Client) Search(ctx context.Context, query string) ([]domain.CoinMatch, error) {
	u := fmt.Sprintf("%s/search?query=%s", c.baseURL, url.QueryEscape(query))

	var res searchResponse
	if err := c.getJSON(ctx, u, 5*time.Minute, &res); err != nil {
		return nil, err
	}

	matches := make([]domain.CoinMatch, 0, len(res.Coins))
	for _, coin := range res.Coins {
		matches = append(matches, domain.CoinMatch{
			CoinID:        coin.ID,
			Name:          coin.Name,
			Symbol:        coin.Symbol,
			MarketCapRank: coin.Rank,
		})
	}
	return matches, nil
}

// getJSON fetches a URL through the limiter and cache and decodes the body.
func (c *Client) getJSON(ctx context.Context, url string, ttl time.Duration, out any) error {
	if raw, found := c.cache.Get(url); found {
		return json.Unmarshal(raw.([]byte), out)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: coingecko API error: %d", domain.ErrUpstream, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: bad response: %v", domain.ErrUpstream, err)
	}
	c.cache.Set(url, raw, ttl)
	return nil
}
