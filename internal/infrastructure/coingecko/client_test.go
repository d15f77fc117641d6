package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptofolio-backend/internal/domain"
)

func TestGetMarkets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/markets", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "usd", q.Get("vs_currency"))
		assert.Equal(t, "market_cap_desc", q.Get("order"))
		assert.Equal(t, "true", q.Get("sparkline"))
		assert.Equal(t, "24h,7d", q.Get("price_change_percentage"))

		w.Write([]byte(`[{
			"id": "bitcoin", "symbol": "btc", "name": "Bitcoin",
			"image": "https://img/btc.png",
			"current_price": 42000.5, "market_cap": 800000000,
			"market_cap_rank": 1, "total_volume": 12345,
			"price_change_percentage_24h": -1.2,
			"price_change_percentage_7d_in_currency": 3.4,
			"sparkline_in_7d": {"price": [1, 2, 3]}
		}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	markets, err := client.GetMarkets(context.Background(), "usd", 1, 10, true)
	require.NoError(t, err)
	require.Len(t, markets, 1)

	m := markets[0]
	assert.Equal(t, "bitcoin", m.CoinID)
	assert.Equal(t, 42000.5, m.CurrentPrice)
	assert.Equal(t, 1, m.MarketCapRank)
	assert.Equal(t, -1.2, m.PctChange24h)
	assert.Equal(t, 3.4, m.PctChange7d)
	assert.Equal(t, []float64{1, 2, 3}, m.Sparkline7d)
}

func TestGetMarketChart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/bitcoin/market_chart", r.URL.Path)
		assert.Equal(t, "daily", r.URL.Query().Get("interval"))
		w.Write([]byte(`{"prices": [[1700000000000, 100.5], [1700086400000, 101.25]]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	points, err := client.GetMarketChart(context.Background(), "bitcoin", "usd", 7)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, int64(1700000000000), points[0].Timestamp)
	assert.Equal(t, 100.5, points[0].Price)
}

func TestGetMarketChart_SingleDayIsHourly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "hourly", r.URL.Query().Get("interval"))
		w.Write([]byte(`{"prices": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.GetMarketChart(context.Background(), "bitcoin", "usd", 1)
	require.NoError(t, err)
}

func TestGetSpotPrices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/simple/price", r.URL.Path)
		assert.Equal(t, "bitcoin,unknown-coin", r.URL.Query().Get("ids"))
		w.Write([]byte(`{"bitcoin": {"usd": 42000}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	prices, err := client.GetSpotPrices(context.Background(), []string{"bitcoin", "unknown-coin"}, "usd")
	require.NoError(t, err)

	assert.Equal(t, 42000.0, prices["bitcoin"])
	// Coins the API does not know come back as zero, not an error.
	assert.Equal(t, 0.0, prices["unknown-coin"])
}

func TestGetSpotPrices_NoCoinsNoRequest(t *testing.T) {
	client := NewClient("http://127.0.0.1:0")
	prices, err := client.GetSpotPrices(context.Background(), nil, "usd")
	require.NoError(t, err)
	assert.Empty(t, prices)
}

func TestGetHistoricalPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/bitcoin/history", r.URL.Path)
		// Calendar dates are reformatted to CoinGecko's dd-mm-yyyy.
		assert.Equal(t, "15-01-2024", r.URL.Query().Get("date"))
		w.Write([]byte(`{"market_data": {"current_price": {"usd": 42500.75}}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	price, err := client.GetHistoricalPrice(context.Background(), "bitcoin", "2024-01-15", "usd")
	require.NoError(t, err)
	assert.Equal(t, 42500.75, price)
}

func TestGetHistoricalPrice_NoMarketData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// CoinGecko returns 200 with no market_data for dates before listing.
		w.Write([]byte(`{"id": "bitcoin"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.GetHistoricalPrice(context.Background(), "bitcoin", "2009-01-01", "usd")
	assert.ErrorIs(t, err, domain.ErrPriceUnavailable)
}

func TestGetHistoricalPrice_BadDate(t *testing.T) {
	client := NewClient("http://127.0.0.1:0")
	_, err := client.GetHistoricalPrice(context.Background(), "bitcoin", "20240115", "usd")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "bit", r.URL.Query().Get("query"))
		w.Write([]byte(`{"coins": [{"id": "bitcoin", "name": "Bitcoin", "symbol": "BTC", "market_cap_rank": 1}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	matches, err := client.Search(context.Background(), "bit")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "bitcoin", matches[0].CoinID)
	assert.Equal(t, 1, matches[0].MarketCapRank)
}

func TestGetJSON_CachesResponses(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"prices": [[0, 1]]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	_, err := client.GetMarketChart(ctx, "bitcoin", "usd", 7)
	require.NoError(t, err)
	_, err = client.GetMarketChart(ctx, "bitcoin", "usd", 7)
	require.NoError(t, err)

	assert.Equal(t, int64(1), hits.Load(), "second identical request is served from cache")
}

func TestGetJSON_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.GetMarketChart(context.Background(), "bitcoin", "usd", 7)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}
