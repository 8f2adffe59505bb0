package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"universe-builder/internal/shared/errors"
)

const internalMessage = "internal server error"

// Error logs an error and sends a JSON error envelope to the client.
// Handlers return errors up to here instead of logging them themselves.
func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	appErr := asAppError(err)
	status := appErr.StatusCode()

	logError(logger, r, err, appErr.Type, status)

	message := appErr.Message
	if status >= http.StatusInternalServerError {
		message = internalMessage
	}
	sendErrorResponse(w, appErr.Type, message, status)
}

// ErrorWithMessage is Error with a client message that differs from the
// logged one.
func ErrorWithMessage(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, clientMessage string) {
	appErr := asAppError(err)
	status := appErr.StatusCode()

	logError(logger, r, err, appErr.Type, status)
	sendErrorResponse(w, appErr.Type, clientMessage, status)
}

func asAppError(err error) *errors.AppError {
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return errors.WrapInternal(internalMessage, err)
}

func logError(logger *slog.Logger, r *http.Request, err error, errorType errors.ErrorType, statusCode int) {
	logCtx := logger.With(
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr,
		"error_type", errorType,
		"status_code", statusCode,
	)

	switch errorType {
	case errors.ErrorTypeNotFound:
		logCtx.Debug("Resource not found", "error", err)
	case errors.ErrorTypeValidation, errors.ErrorTypeData, errors.ErrorTypeMethodNotAllowed, errors.ErrorTypeRateLimited:
		logCtx.Debug("Request rejected", "error", err)
	case errors.ErrorTypeUnauthorized, errors.ErrorTypeForbidden:
		// Could be probing of the admin surface
		logCtx.Warn("Authorization error", "error", err)
	case errors.ErrorTypeEmpty:
		logCtx.Info("Build produced no result", "error", err)
	default:
		logCtx.Error("Internal server error", "error", err)
	}
}

func sendErrorResponse(w http.ResponseWriter, errorType errors.ErrorType, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	body := Envelope{Success: false, Error: &ErrorBody{Type: errorType, Message: message}}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode error response", "error", err)
	}
}
