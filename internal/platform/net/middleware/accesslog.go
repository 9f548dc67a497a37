package middleware

import (
	"net/http"
	"time"

	"github.com/benya7/rss3-widget/internal/platform/logger"
)

// AccessLogOptions configures AccessLog
type AccessLogOptions struct {
	// Slow promotes lines at or above this latency to warn, 0 never does
	Slow time.Duration
}

// statusWriter remembers what the handler answered
type statusWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func wrap(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w, status: http.StatusOK}
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	n, err := sw.ResponseWriter.Write(b)
	sw.size += n
	return n, err
}

// AccessLog writes one zerolog line per request through the request scoped logger
func AccessLog(o AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := wrap(w)
			start := time.Now()
			next.ServeHTTP(sw, r)
			took := time.Since(start)

			log := logger.C(r.Context())
			ev := log.Info()
			if o.Slow > 0 && took >= o.Slow {
				ev = log.Warn()
			}
			ev.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", sw.status).
				Int("bytes", sw.size).
				Dur("took", took).
				Msg("request")
		})
	}
}
