package httpx

import (
	"encoding/json"
	"net/http"
)

// Every response carries the same envelope: statusCode, a message, and
// either an "error" or a "success" short-status key.

func Error(w http.ResponseWriter, status int, body, message string) {
	write(w, status, map[string]any{
		"statusCode": status,
		"error":      body,
		"message":    message,
	})
}

func Success(w http.ResponseWriter, status int, body, message string) {
	write(w, status, map[string]any{
		"statusCode": status,
		"success":    body,
		"message":    message,
	})
}

// SuccessWith adds one payload key (e.g. the fetched entity) to the
// success envelope.
func SuccessWith(w http.ResponseWriter, status int, body, message, key string, value any) {
	write(w, status, map[string]any{
		"statusCode": status,
		"success":    body,
		"message":    message,
		key:          value,
	})
}

func write(w http.ResponseWriter, status int, payload map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	data, err := json.Marshal(payload)
	if err != nil {
		// best-effort error response; avoid writing partial JSON
		http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		// nothing we can do at this point
		_ = err
	}
}
