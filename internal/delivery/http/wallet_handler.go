package http

import (
	"encoding/json"
	"net/http"

	"cryptofolio-backend/internal/domain"
	"cryptofolio-backend/internal/usecase"
)

// WalletHandler serves the authenticated wallet endpoints.
type WalletHandler struct {
	wallet *usecase.WalletUsecase
}

func NewWalletHandler(wallet *usecase.WalletUsecase) *WalletHandler {
	return &WalletHandler{wallet: wallet}
}

// HandleWallet dispatches /api/wallet by method: GET lists, POST adds,
// PUT edits (?id=), DELETE removes (?id=).
func (h *WalletHandler) HandleWallet(w http.ResponseWriter, r *http.Request) {
	userID := UserID(r.Context())

	switch r.Method {
	case http.MethodGet:
		entries, err := h.wallet.List(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, entries)

	case http.MethodPost:
		var input usecase.AddEntryInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		entry, err := h.wallet.Add(r.Context(), userID, input)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, entry)

	case http.MethodPut:
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "id is required", http.StatusBadRequest)
			return
		}
		var patch domain.EntryPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		entry, err := h.wallet.Edit(r.Context(), userID, id, patch)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, entry)

	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "id is required", http.StatusBadRequest)
			return
		}
		if err := h.wallet.Remove(r.Context(), userID, id); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Entry removed"})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
