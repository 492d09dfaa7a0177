package http

import (
	"encoding/json"
	"io"
	"net/http"
)

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	// Headers are already sent, nothing useful can be done on failure
	_ = json.NewEncoder(w).Encode(data)
}

// respondText sends a plain text body exactly as given, without the
// trailing newline http.Error would add
func respondText(w http.ResponseWriter, statusCode int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)
	_, _ = io.WriteString(w, body)
}
