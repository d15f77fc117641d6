package http

import (
	"net/http"
	"strconv"

	"cryptofolio-backend/internal/usecase"
)

// MarketHandler serves the public market data endpoints.
type MarketHandler struct {
	markets *usecase.MarketsUsecase
}

func NewMarketHandler(markets *usecase.MarketsUsecase) *MarketHandler {
	return &MarketHandler{markets: markets}
}

// HandleMarkets handles GET /api/markets
func (h *MarketHandler) HandleMarkets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	markets, err := h.markets.Markets(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, markets)
}

// HandleChart handles GET /api/markets/chart?coin=bitcoin&currency=usd&days=7
func (h *MarketHandler) HandleChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	series, err := h.markets.Chart(r.Context(), r.URL.Query().Get("coin"), r.URL.Query().Get("currency"), days)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

// HandleSearch handles GET /api/markets/search?query=bit
func (h *MarketHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	matches, err := h.markets.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}
