package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gi8lino/jirahook/internal/chat"
)

// writeEnvelope writes env as JSON with the given status. Never panics; always writes something.
func writeEnvelope(w http.ResponseWriter, status int, env chat.Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		http.Error(w, `{"error":{"success":false,"message":"failed to encode response"}}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data) // nolint:errcheck
}
