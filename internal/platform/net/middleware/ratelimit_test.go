package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/benya7/rss3-widget/internal/platform/net/middleware"
)

func TestRateLimitByIP_Blocks(t *testing.T) {
	h := middleware.RateLimitByIP(middleware.RateLimitOptions{Requests: 2, Window: time.Minute})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) }),
	)

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/feeds/config", nil)
		req.RemoteAddr = "10.0.0.7:5555"
		last = httptest.NewRecorder()
		h.ServeHTTP(last, req)
		if i < 2 && last.Code != http.StatusNoContent {
			t.Fatalf("request %d: got %d want 204", i, last.Code)
		}
	}
	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("third request: got %d want 429", last.Code)
	}
	if !strings.Contains(last.Body.String(), "rate limit exceeded") {
		t.Fatalf("body = %s", last.Body.String())
	}
	if ct := last.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("content type = %q", ct)
	}
}

func TestRateLimitByIP_DisabledPassesThrough(t *testing.T) {
	hits := 0
	h := middleware.RateLimitByIP(middleware.RateLimitOptions{})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hits++ }),
	)
	for i := 0; i < 50; i++ {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}
	if hits != 50 {
		t.Fatalf("hits = %d", hits)
	}
}
