package httpkit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/benya7/rss3-widget/internal/modkit/httpkit"
	"github.com/benya7/rss3-widget/internal/platform/net/middleware"
	phttp "github.com/benya7/rss3-widget/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func mounted(o httpkit.StackOptions) http.Handler {
	m := chi.NewRouter()
	httpkit.MountAPIV1(phttp.AdaptChi(m), httpkit.CommonStack(o), func(api httpkit.Router) {
		api.Get("/feeds/config", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
		api.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })
	})
	return m
}

func TestMountAPIV1_ScopesAndStack(t *testing.T) {
	h := mounted(httpkit.StackOptions{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/feeds/config/", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("code = %d", rr.Code)
	}
	if rr.Header().Get("X-Request-Id") == "" && rr.Header().Get("Cache-Control") == "" {
		t.Fatalf("stack headers missing: %v", rr.Header())
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/feeds/config", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unversioned path answered %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/boom", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("panic answered %d", rr.Code)
	}
}

func TestCommonStack_RateLimit(t *testing.T) {
	h := mounted(httpkit.StackOptions{RateLimit: middleware.RateLimitOptions{Requests: 1}})
	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/feeds/config", nil)
		req.RemoteAddr = "192.0.2.10:1234"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	if codes[0] != http.StatusNoContent || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v", codes)
	}
}
