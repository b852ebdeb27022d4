package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-registry/internal/ports/auth"
)

// AuthKeyHeader es el header donde viaja la key (no es Bearer ni cookie).
const AuthKeyHeader = "auth-key"

type ctxKey string

const claimsKey ctxKey = "claims"

// AuthContext:
// - Si viene header auth-key => intenta Verify() y setea claims.
// - Si no hay claims, el request sigue igual; los handlers deciden si exigen auth (401).
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(AuthKeyHeader)
			if verifier == nil || strings.TrimSpace(key) == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), key)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}
