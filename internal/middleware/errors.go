package middleware

import (
	"encoding/json"
	"net/http"
)

// writeError writes the API's standard error body. It mirrors the handler
// package's shape so clients see one format regardless of which layer rejected
// the request.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck
	json.NewEncoder(w).Encode(map[string]map[string]string{
		"error": {"code": code, "message": message},
	})
}
