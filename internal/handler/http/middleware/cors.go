// Package middleware provides HTTP middleware shared across handler packages:
// CORS and per-IP rate limiting.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// CORSConfig holds the configuration for CORS middleware.
type CORSConfig struct {
	// AllowedOrigins is a whitelist of permitted origins.
	// Example: ["http://localhost:3000", "https://example.com"]
	AllowedOrigins []string

	// AllowedMethods specifies which HTTP methods are allowed in CORS requests.
	// Default: GET, POST, PUT, DELETE, PATCH, OPTIONS
	AllowedMethods []string

	// AllowedHeaders specifies which request headers are allowed in CORS requests.
	// Default: Content-Type, Authorization, X-Request-ID
	AllowedHeaders []string

	// MaxAge specifies how long preflight results can be cached, in seconds.
	// Default: 86400 (24 hours)
	MaxAge int
}

// LoadCORSConfig loads the CORS configuration from environment variables.
// CORS_ALLOWED_ORIGINS is required (comma-separated, fail-closed);
// CORS_MAX_AGE is optional.
func LoadCORSConfig() (*CORSConfig, error) {
	originsStr := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if originsStr == "" {
		return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS environment variable is required")
	}

	var origins []string
	for _, o := range strings.Split(originsStr, ",") {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		u, err := url.Parse(o)
		if err != nil {
			return nil, fmt.Errorf("invalid origin URL %q: %w", o, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return nil, fmt.Errorf("origin must use http or https scheme: %s", o)
		}
		if strings.HasSuffix(o, "/") {
			return nil, fmt.Errorf("origin must not have trailing slash: %s", o)
		}
		origins = append(origins, o)
	}
	if len(origins) == 0 {
		return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS contains no usable origins")
	}

	maxAge := 86400
	if v := os.Getenv("CORS_MAX_AGE"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			return nil, fmt.Errorf("invalid CORS_MAX_AGE: %q", v)
		}
		maxAge = parsed
	}

	return &CORSConfig{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
		MaxAge:         maxAge,
	}, nil
}

func (c *CORSConfig) isAllowed(origin string) bool {
	for _, allowed := range c.AllowedOrigins {
		if allowed == origin {
			return true
		}
	}
	return false
}

// CORS returns middleware that handles cross-origin requests. Allowed origins
// are echoed back with credentials support; preflight OPTIONS requests are
// answered with 204 without reaching the next handler. Requests from
// disallowed origins pass through without CORS headers so the browser blocks
// the response.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			// same-origin request
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !config.isAllowed(origin) {
				slog.Warn("CORS: origin not allowed",
					slog.String("origin", origin),
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
