package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/KCCPMG/ReadingList/internal/apperrors"
)

// respondJSON writes v as the JSON response body.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError maps a service error to its status code and a safe message.
// Anything outside the known kinds becomes a generic 500 that leaks nothing.
func respondError(w http.ResponseWriter, err error) {
	status := apperrors.StatusOf(err)
	message := err.Error()
	if apperrors.KindOf(err) == apperrors.KindUnclassified {
		log.Error().Err(err).Msg("Unclassified error reached the boundary")
		message = "Something went wrong, please try again"
	}
	respondJSON(w, status, map[string]string{"error": message})
}
