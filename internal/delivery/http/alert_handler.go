package http

import (
	"encoding/json"
	"net/http"

	"cryptofolio-backend/internal/usecase"
)

// AlertHandler serves the authenticated price alert endpoints.
type AlertHandler struct {
	alerts *usecase.AlertsUsecase
}

func NewAlertHandler(alerts *usecase.AlertsUsecase) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

// HandleAlerts dispatches /api/alerts by method: GET lists, POST adds,
// DELETE removes (?id=).
func (h *AlertHandler) HandleAlerts(w http.ResponseWriter, r *http.Request) {
	userID := UserID(r.Context())

	switch r.Method {
	case http.MethodGet:
		alerts, err := h.alerts.List(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, alerts)

	case http.MethodPost:
		var input usecase.AlertInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		alert, err := h.alerts.Add(r.Context(), userID, input)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, alert)

	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "id is required", http.StatusBadRequest)
			return
		}
		if err := h.alerts.Remove(r.Context(), userID, id); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Alert removed"})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
