// Package middleware provides the HTTP middleware chain for the folio API:
// panic recovery, request logging, security headers, rate limiting, identity
// token authentication and CSRF protection.
package middleware

import (
	"encoding/json"
	"net/http"
)

// errorBody is the JSON envelope for middleware-level rejections, matching
// the shape handlers use: {"success":false,"error":{"code","message"}}.
type errorBody struct {
	Success bool      `json:"success"`
	Error   errorInfo `json:"error"`
}

type errorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorBody{Error: errorInfo{Code: code, Message: message}})
}
