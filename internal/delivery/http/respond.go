package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"cryptofolio-backend/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the domain error taxonomy to status codes. Nothing here is
// fatal: validation and lookups are the caller's problem, upstream outages
// are retryable.
func writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrPriceUnavailable):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUpstream):
		status = http.StatusBadGateway
	default:
		log.Printf("Internal error: %v", err)
		status = http.StatusInternalServerError
	}

	writeJSON(w, status, map[string]interface{}{
		"error":     err.Error(),
		"retryable": status == http.StatusBadGateway,
	})
}
