package middleware

import (
	"net/http"
	"time"

	perr "github.com/benya7/rss3-widget/internal/platform/errors"
	pnet "github.com/benya7/rss3-widget/internal/platform/net"

	"github.com/go-chi/httprate"
)

// RateLimitOptions configures the per client limiter
type RateLimitOptions struct {
	// Requests allowed per Window, 0 disables limiting
	Requests int
	Window   time.Duration
}

// RateLimitByIP caps requests per client IP and answers 429 with the JSON error envelope
func RateLimitByIP(o RateLimitOptions) func(http.Handler) http.Handler {
	if o.Requests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if o.Window <= 0 {
		o.Window = time.Minute
	}
	return httprate.Limit(
		o.Requests,
		o.Window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(limited),
	)
}

func limited(w http.ResponseWriter, r *http.Request) {
	pnet.WriteError(w, r, perr.Newf(perr.ErrorCodeTooManyRequests, "rate limit exceeded"))
}
