package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yogeshtekawade0602/bicycle-project/internal/api/flash"
	apperrors "github.com/yogeshtekawade0602/bicycle-project/pkg/errors"
)

// Helper functions shared by the handlers.

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// redirectWithFlash answers a form submission with a 302 to the listing
// and a one-shot message for the next page.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, codec *flash.Codec, level, text string) {
	codec.Set(w, flash.Message{Level: level, Text: text})
	http.Redirect(w, r, "/", http.StatusFound)
}

// userMessage converts an error into text safe to show the user.
// Internal detail is logged by the caller, never surfaced.
func userMessage(err error) string {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return "internal error"
	}
	switch appErr.Type {
	case apperrors.ErrorTypeValidation, apperrors.ErrorTypeBlocked, apperrors.ErrorTypeNotFound:
		return appErr.Message
	case apperrors.ErrorTypeConnectivity:
		return "unable to reach the record store"
	default:
		return "internal error"
	}
}
