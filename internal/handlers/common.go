package handlers

import (
	"encoding/json"
	"net/http"

	"couple-backend/internal/apperrors"

	"github.com/rs/zerolog/log"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// respondError maps err through the error taxonomy. Internal failures are
// logged with their cause; the client only ever sees the taxonomy message.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().
			Err(apperrors.Cause(err)).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Request failed")
	}
	respondJSON(w, status, ErrorResponse{Error: apperrors.Message(err)})
}

// respondValidation is for handler-local input failures.
func respondValidation(w http.ResponseWriter, r *http.Request, msg string) {
	respondError(w, r, apperrors.NewValidation(msg))
}
