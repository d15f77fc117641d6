package http

import (
	"net/http"

	"cryptofolio-backend/internal/usecase"
)

// PortfolioHandler serves the derived views over the wallet.
type PortfolioHandler struct {
	portfolio *usecase.PortfolioUsecase
}

func NewPortfolioHandler(portfolio *usecase.PortfolioUsecase) *PortfolioHandler {
	return &PortfolioHandler{portfolio: portfolio}
}

// HandlePortfolio handles GET /api/portfolio
func (h *PortfolioHandler) HandlePortfolio(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	positions, err := h.portfolio.Positions(r.Context(), UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, positions)
}

// HandleSummary handles GET /api/wallet/summary?currency=usd
func (h *PortfolioHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	summary, err := h.portfolio.Summary(r.Context(), UserID(r.Context()), r.URL.Query().Get("currency"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// HandlePnL handles GET /api/wallet/pnl?currency=usd
func (h *PortfolioHandler) HandlePnL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	series, err := h.portfolio.PnLSeries(r.Context(), UserID(r.Context()), r.URL.Query().Get("currency"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}
