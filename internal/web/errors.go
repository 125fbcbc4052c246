package web

import (
	"encoding/json"
	"net/http"

	"github.com/kbenson/cecredit/internal/logging"
)

// errorResponse is the JSON body of every error answer.
type errorResponse struct {
	Error string `json:"error"`
}

// writeError logs the failure with request context and sends a JSON error
// body with the given status.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	logging.FromContext(r.Context()).Error("request failed",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", message,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: message})
}

// writeJSON encodes v as JSON and writes it to w.
// Encoding errors are logged since headers are already sent.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("json encode failed", "error", err)
	}
}
