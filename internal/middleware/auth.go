package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"github.com/dmatsui/bookkeeping-service/internal/config"
)

type contextKey string

const organizationKey contextKey = "organizationID"

// AuthMiddleware verifies the bearer token and stores the organization
// id claim in the request context. Issuing tokens (login, sessions) is
// not this service's job.
func AuthMiddleware(cfg *config.Config) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "Missing bearer token", http.StatusUnauthorized)
				return
			}

			token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return []byte(cfg.JWTSecret), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				http.Error(w, "Invalid token claims", http.StatusUnauthorized)
				return
			}
			orgID, ok := claims["org_id"].(float64)
			if !ok || orgID <= 0 {
				http.Error(w, "Token carries no organization", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), organizationKey, int64(orgID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OrganizationID returns the tenant id the middleware stored.
func OrganizationID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(organizationKey).(int64)
	return id, ok
}

// WithOrganization returns a context carrying the tenant id, for tests
// and the CLI.
func WithOrganization(ctx context.Context, orgID int64) context.Context {
	return context.WithValue(ctx, organizationKey, orgID)
}
