package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/trinitynoble/BudgetBuddyProject/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError translates service errors to HTTP statuses. This is the
// only place that mapping lives.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, apperr.ErrValidation):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, apperr.ErrInvalidCredentials),
		errors.Is(err, apperr.ErrMissingToken),
		errors.Is(err, apperr.ErrInvalidToken):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, apperr.ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, apperr.ErrEmailTaken):
		status = http.StatusConflict
		message = err.Error()
	}

	writeJSON(w, status, map[string]string{"error": message})
}

func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": message})
}
