package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/medtrack/medication-interaction-api/internal/auth"
	"github.com/medtrack/medication-interaction-api/internal/payload"
)

type contextKey struct{}

var userClaimsKey = contextKey{}

// RequireAuth gates a route group behind a bearer token. Valid claims are
// attached to the request context; expired tokens get an expiry-specific
// response, everything else a generic one.
func RequireAuth(jwtAuth auth.JWTAuthenticator, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondJSON(w, http.StatusUnauthorized, payload.MessageResponse{
					Message: "Unauthorized or invalid header",
				})
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				respondJSON(w, http.StatusUnauthorized, payload.MessageResponse{
					Message: "Unauthorized or invalid header",
				})
				return
			}

			claims := &auth.AccessTokenClaims{}
			if _, err := jwtAuth.ValidateTokenWithClaims(parts[1], secret, claims); err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					respondJSON(w, http.StatusUnauthorized, payload.ExpiredTokenResponse{
						Message:   "Token expired, please log in again",
						ExpiredAt: expiredAt(claims),
					})
					return
				}

				respondJSON(w, http.StatusUnauthorized, payload.MessageResponse{
					Message: "Unauthorized or invalid token",
				})
				return
			}

			ctx := context.WithValue(r.Context(), userClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the claims attached by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*auth.AccessTokenClaims, bool) {
	claims, ok := ctx.Value(userClaimsKey).(*auth.AccessTokenClaims)
	return claims, ok
}

// The claims struct is populated during decode even when validation fails,
// so the decoded expiry is available here.
func expiredAt(claims *auth.AccessTokenClaims) string {
	if claims.ExpiresAt == nil {
		return ""
	}

	return claims.ExpiresAt.Time.UTC().Format(time.RFC3339)
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
