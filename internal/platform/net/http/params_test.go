package http_test

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	phttp "github.com/benya7/rss3-widget/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestParam_ReadsChiURLParam(t *testing.T) {
	var got string
	m := chi.NewRouter()
	r := phttp.AdaptChi(m)
	r.Get("/feeds/{id}", func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
		got = phttp.Param(req, "id")
	})

	m.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(stdhttp.MethodGet, "/feeds/7f1c", nil))
	if got != "7f1c" {
		t.Fatalf("param = %q", got)
	}
	if v := phttp.Param(httptest.NewRequest(stdhttp.MethodGet, "/", nil), "id"); v != "" {
		t.Fatalf("param outside router = %q", v)
	}
}
