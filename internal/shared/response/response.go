package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"universe-builder/internal/shared/errors"
)

// Envelope wraps every JSON body the API sends.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

type ErrorBody struct {
	Type    errors.ErrorType `json:"type"`
	Message string           `json:"message"`
}

// Success sends a JSON success response to the client
func Success(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status code has already been sent, so an encoding failure can only be logged
	if err := json.NewEncoder(w).Encode(Envelope{Success: true, Data: data}); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
