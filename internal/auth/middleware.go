package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/KCCPMG/ReadingList/internal/apperrors"
	"github.com/KCCPMG/ReadingList/internal/models"
)

// Authenticator resolves a token to the user it identifies.
type Authenticator interface {
	Authenticate(token string) (models.User, error)
}

type contextKey string

// UserKey is the context key under which Middleware stores the
// authenticated user.
const UserKey = contextKey("authUser")

// Middleware protects routes: it pulls the bearer token from the
// Authorization header (falling back to the token cookie), authenticates it,
// and passes the resolved user down via context. InvalidToken and
// InvalidUser keep their distinct statuses and messages.
func Middleware(authenticator Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenStr string

			// 1. Try to get the token from the Authorization header
			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.Split(authHeader, "Bearer ")
				if len(parts) == 2 {
					tokenStr = parts[1]
				}
			}

			// 2. If not in header, fall back to the cookie
			if tokenStr == "" {
				if cookie, err := r.Cookie("token"); err == nil {
					tokenStr = cookie.Value
				}
			}

			if tokenStr == "" {
				writeAuthError(w, apperrors.InvalidToken())
				return
			}

			user, err := authenticator.Authenticate(tokenStr)
			if err != nil {
				writeAuthError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFrom returns the authenticated user stored by Middleware.
func UserFrom(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(UserKey).(models.User)
	return user, ok
}

func writeAuthError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apperrors.StatusOf(err))
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
