package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/soban-iftikhar/BuzzNews/internal/handler/http/respond"
	authservice "github.com/soban-iftikhar/BuzzNews/internal/service/auth"
)

type ctxKey string

const ctxClaims ctxKey = "claims"

// ClaimsFromContext retrieves the verified token claims from the context.
// Returns nil when the request was not authenticated.
func ClaimsFromContext(ctx context.Context) *authservice.Claims {
	claims, _ := ctx.Value(ctxClaims).(*authservice.Claims)
	return claims
}

// WithClaims returns a context carrying the given claims.
func WithClaims(ctx context.Context, claims *authservice.Claims) context.Context {
	return context.WithValue(ctx, ctxClaims, claims)
}

func bearerToken(r *http.Request) (string, error) {
	const prefix = "Bearer "
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, prefix) {
		return "", errors.New("missing bearer token")
	}
	return strings.TrimPrefix(authz, prefix), nil
}

// RequireUser rejects requests without a valid bearer token. The verified
// claims are added to the request context for downstream handlers.
func RequireUser(svc *authservice.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
				return
			}
			claims, err := svc.ParseToken(token)
			if err != nil {
				respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireAdmin is RequireUser plus an admin check.
func RequireAdmin(svc *authservice.Service) func(http.Handler) http.Handler {
	requireUser := RequireUser(svc)
	return func(next http.Handler) http.Handler {
		return requireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil || !claims.IsAdmin {
				respond.SafeError(w, http.StatusForbidden, errors.New("forbidden"))
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}
