// Package metrics holds the process wide Prometheus collectors and the scrape handler
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rss3_widget"

var (
	// upstream API
	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Requests sent to the RSS3 API by endpoint and status class",
		},
		[]string{"endpoint", "status"},
	)

	upstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "RSS3 API request latency in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"endpoint"},
	)

	// feed pipeline
	pagesFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_pages_fetched_total",
			Help:      "Feed pages fetched by mode (single, list) and outcome",
		},
		[]string{"mode", "outcome"},
	)

	notesFetchedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_notes_fetched_total",
			Help:      "Notes appended to feeds",
		},
	)

	identityLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "identity_lookups_total",
			Help:      "Address resolutions by result (hit, resolved, self, error)",
		},
		[]string{"result"},
	)

	mediaProbesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "media_probes_total",
			Help:      "Media type probes by resulting kind",
		},
		[]string{"kind"},
	)

	sessionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "feed_sessions_open",
			Help:      "Feed sessions currently held in memory",
		},
	)

	// inbound HTTP (RED)
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)
)

// UpstreamRequest records one RSS3 API call
func UpstreamRequest(endpoint, status string, d time.Duration) {
	upstreamRequestsTotal.WithLabelValues(endpoint, status).Inc()
	upstreamRequestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// PageFetched records a feed page fetch and how many notes it carried
func PageFetched(mode string, notes int, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	pagesFetchedTotal.WithLabelValues(mode, outcome).Inc()
	if notes > 0 {
		notesFetchedTotal.Add(float64(notes))
	}
}

// IdentityLookup records an address resolution outcome
func IdentityLookup(result string) { identityLookupsTotal.WithLabelValues(result).Inc() }

// MediaProbe records a media type probe outcome
func MediaProbe(kind string) { mediaProbesTotal.WithLabelValues(kind).Inc() }

// SessionOpened bumps the open sessions gauge
func SessionOpened() { sessionsOpen.Inc() }

// SessionClosed drops the open sessions gauge
func SessionClosed() { sessionsOpen.Dec() }

// HTTPStart marks a request in flight and returns the completion hook
func HTTPStart() func(method, path string, status int, d time.Duration) {
	httpRequestsInFlight.Inc()
	return func(method, path string, status int, d time.Duration) {
		httpRequestsInFlight.Dec()
		httpRequestsTotal.WithLabelValues(method, path, statusLabel(status)).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
	}
}

// Handler serves the default registry for scraping
func Handler() http.Handler { return promhttp.Handler() }

func statusLabel(code int) string {
	if code <= 0 {
		code = http.StatusOK
	}
	return strconv.Itoa(code)
}
