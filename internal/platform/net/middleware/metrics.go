package middleware

import (
	"net/http"
	"time"

	"github.com/benya7/rss3-widget/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

// Metrics records HTTP RED metrics labelled by the matched route pattern
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		done := metrics.HTTPStart()
		start := time.Now()
		sw := wrap(w)
		next.ServeHTTP(sw, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}
		done(r.Method, path, sw.status, time.Since(start))
	})
}
