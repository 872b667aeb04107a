// internal/httpapi/respond.go
//
// JSON response envelope helpers.
//
// Context
// -------
// Every response from the API uses the `{success: bool, …}` envelope the
// frontend already consumes.  Persistence failures are reported to the
// client as opaque messages; the real error only reaches the logs.
package httpapi

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// writeJSON serializes v with the proper content type.  Encoding failures
// at this point mean the response is already half-written, so they are
// only logged.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.S().Errorw("response encode failed", "err", err)
	}
}

// fail writes the standard failure envelope.
func fail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"message": msg,
	})
}
