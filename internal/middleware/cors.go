// Package middleware provides reusable HTTP middleware for the SmartTrav API:
// CORS, request logging, body limits, bearer authentication and rate limiting.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// corsMaxAge is how long, in seconds, browsers may cache a preflight answer.
const corsMaxAge = 600

// NewCORSHandler returns a middleware that applies CORS headers for the given
// origins (scheme + host, no trailing slash). A single "*" allows any origin.
//
// Authorization is allowed as a request header because the API authenticates
// with bearer tokens, not cookies, so credentials mode stays off.
// Content-Disposition and Retry-After are exposed for export downloads and
// rate-limit backoff.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Disposition", "Retry-After", "X-Request-Id"},
		MaxAge:         corsMaxAge,
	})
	return c.Handler
}
