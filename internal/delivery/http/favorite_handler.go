package http

import (
	"encoding/json"
	"net/http"

	"cryptofolio-backend/internal/usecase"
)

// FavoriteHandler serves the authenticated favorites endpoints.
type FavoriteHandler struct {
	markets *usecase.MarketsUsecase
}

func NewFavoriteHandler(markets *usecase.MarketsUsecase) *FavoriteHandler {
	return &FavoriteHandler{markets: markets}
}

type favoriteRequest struct {
	CoinID string `json:"coinId"`
}

// HandleFavorites dispatches /api/favorites by method: GET lists, POST adds,
// DELETE removes (?coin=).
func (h *FavoriteHandler) HandleFavorites(w http.ResponseWriter, r *http.Request) {
	userID := UserID(r.Context())

	switch r.Method {
	case http.MethodGet:
		favorites, err := h.markets.Favorites(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, favorites)

	case http.MethodPost:
		var req favoriteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := h.markets.AddFavorite(r.Context(), userID, req.CoinID); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"message": "Favorite added"})

	case http.MethodDelete:
		coinID := r.URL.Query().Get("coin")
		if coinID == "" {
			http.Error(w, "coin is required", http.StatusBadRequest)
			return
		}
		if err := h.markets.RemoveFavorite(r.Context(), userID, coinID); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Favorite removed"})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
