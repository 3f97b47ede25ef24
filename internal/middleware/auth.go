package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/BorgesHen/MochilaOk/internal/auth"
)

// TokenVerifier validates a bearer token and returns the user it was issued to.
// *auth.TokenManager satisfies it.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

// RequireAuth returns a middleware that rejects requests without a valid
// "Authorization: Bearer <token>" header with 401. On success the user id is
// stored in the request context (see auth.UserIDFrom).
func RequireAuth(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w, "missing bearer token")
				return
			}

			userID, err := v.Verify(token)
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			noteUser(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}

// bearerToken extracts the token from an Authorization header value.
// The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="mochilaok"`)
	writeError(w, http.StatusUnauthorized, "unauthenticated", message)
}
