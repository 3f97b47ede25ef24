package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/BorgesHen/MochilaOk/internal/domain"
)

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

func errorBody(code, message string) errorResponse {
	return errorResponse{Error: errorDetail{Code: code, Message: message}}
}

// errorKinds maps domain sentinels to HTTP responses. fallback is used when
// the error carries no detail message of its own.
var errorKinds = []struct {
	target   error
	status   int
	code     string
	fallback string
}{
	{domain.ErrValidation, http.StatusBadRequest, "validation_error", "invalid request"},
	{domain.ErrInvalidOperation, http.StatusBadRequest, "invalid_operation", "operation not allowed"},
	{domain.ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated", "authentication required"},
	{domain.ErrForbidden, http.StatusForbidden, "forbidden", "forbidden"},
	{domain.ErrNotFound, http.StatusNotFound, "not_found", "not found"},
	{domain.ErrConflict, http.StatusConflict, "conflict", "conflict"},
}

// writeError maps err onto a status and JSON error body. Anything that is not
// a domain sentinel is logged and reported as a generic 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			writeJSON(w, k.status, errorBody(k.code, unwrapMessage(err, k.target, k.fallback)))
			return
		}
	}
	s.log.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	writeJSON(w, http.StatusInternalServerError, errorBody("internal_error", "internal server error"))
}

// unwrapMessage extracts the human-readable part that follows the sentinel.
// e.g. "service.CategoryService.Create: validation error: name is required" → "name is required"
func unwrapMessage(err, sentinel error, fallback string) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 && len(msg) > i+len(prefix) {
		return msg[i+len(prefix):]
	}
	return fallback
}
