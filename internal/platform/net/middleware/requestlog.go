package middleware

import (
	"net/http"

	"github.com/benya7/rss3-widget/internal/platform/logger"
	pnet "github.com/benya7/rss3-widget/internal/platform/net"
)

// RequestLogger copies the chi request id onto the logger context so logger.C tags every line.
// Mount it after RequestID
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.WithRequest(r.Context(), pnet.RequestID(r.Context()), pnet.SessionID(r.Context()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
