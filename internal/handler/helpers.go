package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/nimbuscloud/nimbus-api/internal/apperrors"
)

const maxBodyBytes = 1 << 20 // 1MB

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError converts any service error into the uniform failure envelope.
// Store internals are logged, never sent to the caller.
func respondError(w http.ResponseWriter, err error) {
	status := apperrors.Status(err)
	msg, details := apperrors.Client(err)

	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	}

	body := map[string]any{"success": false, "error": msg}
	if details != "" {
		body["details"] = details
	}
	writeJSON(w, status, body)
}

// decodeBody decodes a size-capped JSON body into v, writing the failure
// envelope itself. Callers just return on a non-nil error.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]any{"success": false, "error": "request body too large"})
			return err
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "invalid request body"})
		return err
	}

	return nil
}
