// Package middleware holds the request pipeline pieces mounted in front of feed routes
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// RequestID propagates X-Request-Id or mints one
func RequestID() func(http.Handler) http.Handler { return chimw.RequestID }

// RealIP trusts X-Forwarded-For and X-Real-IP for RemoteAddr
func RealIP() func(http.Handler) http.Handler { return chimw.RealIP }

// NoCache marks responses uncacheable; feed pages change as sessions advance
func NoCache() func(http.Handler) http.Handler { return chimw.NoCache }

// StripSlashes routes /feeds/ like /feeds
func StripSlashes() func(http.Handler) http.Handler { return chimw.StripSlashes }

// Timeout bounds handler contexts, including the upstream calls they make
func Timeout(d time.Duration) func(http.Handler) http.Handler { return chimw.Timeout(d) }

// Compress gzips JSON bodies at level
func Compress(level int) func(http.Handler) http.Handler {
	c := chimw.NewCompressor(level, "application/json")
	return c.Handler
}

// CORSOptions are the cross origin knobs read from FEED_API_CORS_*
type CORSOptions struct {
	AllowedOrigins []string
	MaxAge         int
}

// CORS lets embedding pages call the feed endpoints
func CORS(o CORSOptions) func(http.Handler) http.Handler {
	origins := o.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return chicors.Handler(chicors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         o.MaxAge,
	})
}
