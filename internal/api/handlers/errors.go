package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"Chirp/internal/core/failures"
)

// WriteError writes a standardized JSON error response
func WriteError(w http.ResponseWriter, statusCode int, errorType, message string) {
	WriteJSON(w, statusCode, map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}

// WriteJSON writes v as a JSON response body
func WriteJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// StatusFor maps a failure kind to its HTTP status
func StatusFor(kind failures.Kind) int {
	switch kind {
	case failures.KindValidation:
		return http.StatusBadRequest
	case failures.KindNotFound:
		return http.StatusNotFound
	case failures.KindForbidden:
		return http.StatusForbidden
	case failures.KindNone:
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}

// HandleServiceError converts a command or query error to an HTTP response.
// Store and unclassified failures are logged and reported without detail.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	kind := failures.KindOf(err)
	status := StatusFor(kind)

	if status == http.StatusInternalServerError {
		slog.Error("request failed",
			"error", err,
			"kind", kind,
			"method", r.Method,
			"path", r.URL.Path)
		WriteError(w, status, "InternalServerError", "An internal error occurred")
		return
	}

	var failure *failures.Error
	if errors.As(err, &failure) {
		WriteError(w, status, failure.Code, failure.Message)
		return
	}
	WriteError(w, status, failures.CodeOf(err), err.Error())
}
