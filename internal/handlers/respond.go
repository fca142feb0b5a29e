// Package handlers contains the HTTP handlers for the portfolio API.
// Handlers are grouped by concern (auth, admin, public) and receive their
// dependencies through the handler struct. Every response uses the same
// JSON envelope: {"success":true,"data":...} on success and
// {"success":false,"error":{"code","message"}} on failure.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"folio/internal/store"
)

type successBody struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type errorBody struct {
	Success bool      `json:"success"`
	Error   errorInfo `json:"error"`
}

type errorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respond writes a success envelope with the given payload.
func respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(successBody{Success: true, Data: data}); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// respondError writes an error envelope with the given code and message.
func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorBody{
		Success: false,
		Error:   errorInfo{Code: code, Message: message},
	}); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// respondStoreError translates the store's sentinel errors into the API's
// error vocabulary. Anything unexpected is logged and reported as a generic
// 500 so internals never reach the client.
func respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, store.ErrConflict):
		respondError(w, http.StatusConflict, "CONFLICT", "Resource already exists")
	default:
		slog.Error("store operation failed", "error", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
	}
}

// decodeJSON parses a request body into dst. Returns false (after writing a
// 400 VALIDATION_ERROR) when the body is missing or malformed.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return false
	}
	return true
}
