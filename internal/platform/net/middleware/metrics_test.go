package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/benya7/rss3-widget/internal/platform/metrics"
	"github.com/benya7/rss3-widget/internal/platform/net/middleware"

	"github.com/go-chi/chi/v5"
)

func TestMetrics_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middleware.Metrics)
	r.Get("/feeds/{id}", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusAccepted) })

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/feeds/abc-123", nil))
	if rr.Code != http.StatusAccepted {
		t.Fatalf("code = %d", rr.Code)
	}

	srv := httptest.NewServer(metrics.Handler())
	defer srv.Close()
	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	raw, _ := io.ReadAll(resp.Body)
	body := string(raw)

	want := `rss3_widget_http_requests_total{method="GET",path="/feeds/{id}",status="202"}`
	if !strings.Contains(body, want) {
		t.Fatalf("missing %s in scrape output", want)
	}
	if strings.Contains(body, "abc-123") {
		t.Fatalf("raw path leaked into labels")
	}
}
