package auth

import (
	"net/http"

	"github.com/soban-iftikhar/BuzzNews/internal/handler/http/middleware"
	authservice "github.com/soban-iftikhar/BuzzNews/internal/service/auth"
)

// Register registers the signup and login endpoints with the given mux.
// Both endpoints are rate limited per client IP to slow down credential
// stuffing.
func Register(mux *http.ServeMux, svc *authservice.Service, limiter *middleware.IPRateLimiter) {
	mux.Handle("POST /api/auth/signup", limiter.Limit(SignupHandler{Svc: svc}))
	mux.Handle("POST /api/auth/login", limiter.Limit(LoginHandler{Svc: svc}))
}
