package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"github.com/benya7/rss3-widget/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack, see services/api.StackFromConfig
type StackOptions struct {
	CORS      middleware.CORSOptions
	RateLimit middleware.RateLimitOptions
	// Timeout bounds each request, 0 means 30s
	Timeout time.Duration
	// SlowRequest promotes access log lines to warn
	SlowRequest time.Duration
}

// CommonStack is the middleware every versioned route runs behind, outermost first
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RequestLogger,
		middleware.Recover,
		middleware.RateLimitByIP(o.RateLimit),
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.SlowRequest}),
		middleware.Metrics,
		middleware.CORS(o.CORS),
		middleware.NoCache(),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
}

// MountAPIV1 scopes mount under /api/v1 behind mw
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api/v1", func(api Router) {
		api.Use(mw...)
		mount(api)
	})
}
