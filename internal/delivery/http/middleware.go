package http

import (
	"context"
	"net/http"
	"strings"
)

// TokenVerifier resolves a bearer ID token to a stable user id. Implemented
// by the Firebase authenticator; faked in tests.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (string, error)
}

type contextKey string

const userIDKey contextKey = "userID"

// AuthMiddleware guards the per-user endpoints. Requests carry a Firebase ID
// token in the Authorization header; everything else about identity (sign-up,
// login, password flows) happens in the web client against Firebase directly.
type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireUser rejects requests without a valid bearer token and stores the
// resolved user id in the request context.
func (m *AuthMiddleware) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.verifier == nil {
			http.Error(w, "Authentication not configured", http.StatusServiceUnavailable)
			return
		}

		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			http.Error(w, "Missing bearer token", http.StatusUnauthorized)
			return
		}

		userID, err := m.verifier.Verify(r.Context(), token)
		if err != nil {
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	}
}

// UserID returns the authenticated user id stored by RequireUser.
func UserID(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}
