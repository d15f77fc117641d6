package http

import (
	"net/http"
	"strconv"

	"cryptofolio-backend/internal/usecase"
)

// TrendHandler serves the performance overview and forecast charts.
type TrendHandler struct {
	trends *usecase.TrendsUsecase
}

func NewTrendHandler(trends *usecase.TrendsUsecase) *TrendHandler {
	return &TrendHandler{trends: trends}
}

// HandleOverview handles GET /api/trends?currency=usd
func (h *TrendHandler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	markets, err := h.trends.Overview(r.Context(), r.URL.Query().Get("currency"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, markets)
}

// HandleForecast handles
// GET /api/trends/forecast?coin=bitcoin&currency=usd&days=30&model=linear&forecastDays=7
func (h *TrendHandler) HandleForecast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	days, _ := strconv.Atoi(q.Get("days"))
	forecastDays, _ := strconv.Atoi(q.Get("forecastDays"))

	result, err := h.trends.GetChart(r.Context(), usecase.ChartRequest{
		CoinID:       q.Get("coin"),
		Currency:     q.Get("currency"),
		Days:         days,
		Model:        q.Get("model"),
		ForecastDays: forecastDays,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
