package auth

import (
	"net/http"
	"strings"

	"github.com/AlexWarnes/fStopandGo-api/apperror"
	"github.com/AlexWarnes/fStopandGo-api/config"
)

// JWTMiddleware verifies the Authorization bearer token on every request it
// wraps and installs the verified claims into the request context. Requests
// with a missing, malformed, expired, or forged token are rejected with 401
// before any handler logic runs.
func JWTMiddleware(cfg *config.AuthConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteError(w, r, apperror.NewAuthError("Authorization header is missing", nil))
				return
			}

			// The header must be "Bearer {token}".
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				WriteError(w, r, apperror.NewAuthError("Authorization header format must be Bearer {token}", nil))
				return
			}

			claims, err := VerifyToken(parts[1], cfg.JWTSecret)
			if err != nil {
				WriteError(w, r, apperror.NewAuthError("Invalid or expired token", err))
				return
			}

			next.ServeHTTP(w, r.WithContext(NewContextWithClaims(r.Context(), claims)))
		})
	}
}
