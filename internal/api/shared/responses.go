// Package shared holds the response envelope and context helpers used by
// both the dispatch layer and the route handlers.
package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse defines the standard error response structure. Error holds
// either a plain message or, for validation failures, a map of input bucket
// to field errors. Code repeats the HTTP status in the body so clients can
// route on it without inspecting transport headers.
type ErrorResponse struct {
	Error any `json:"error"`
	Code  int `json:"code"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes the JSON error envelope with the given status code
// and error payload, and logs the response for trace correlation.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, errPayload any) {
	traceID := GetTraceID(r.Context())

	slog.Debug("sending error response",
		"status_code", status,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, ErrorResponse{
		Error: errPayload,
		Code:  status,
	})
}
