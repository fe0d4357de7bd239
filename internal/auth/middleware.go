package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/quizmaster-app/backend/internal/config"
)

type contextKey string

const claimsContextKey contextKey = "auth_claims"

var ErrNoClaims = errors.New("no authenticated principal in context")

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

func GetUserClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	if !ok || claims == nil {
		return nil, ErrNoClaims
	}
	return claims, nil
}

// IsAdmin is the single access-policy check used by the read paths: absent or
// non-admin claims mean the caller gets the cached, non-admin view.
func IsAdmin(ctx context.Context) bool {
	claims, err := GetUserClaimsFromContext(ctx)
	return err == nil && claims.IsAdmin()
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// AuthMiddleware requires a valid bearer token and stores its claims in the
// request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			config.Error(w, http.StatusUnauthorized, "Missing authorization token")
			return
		}

		claims, err := ValidateJWT(token)
		if err != nil {
			config.WithContext(r.Context()).WithError(err).Warn("Rejected invalid token")
			config.Error(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// OptionalAuthMiddleware decodes claims when a token is present but lets
// anonymous requests through. Anonymous callers are treated as non-admin.
func OptionalAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := bearerToken(r); token != "" {
			if claims, err := ValidateJWT(token); err == nil {
				r = r.WithContext(WithClaims(r.Context(), claims))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// AdminOnly gates a route on the admin role. Mounted once per admin route so
// the role check is never re-implemented inside handlers.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := GetUserClaimsFromContext(r.Context())
		if err != nil {
			config.Error(w, http.StatusUnauthorized, "Missing authorization token")
			return
		}
		if !claims.IsAdmin() {
			config.Error(w, http.StatusForbidden, "Access Denied")
			return
		}
		next.ServeHTTP(w, r)
	})
}
