package modkit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/benya7/rss3-widget/internal/modkit"
	"github.com/benya7/rss3-widget/internal/modkit/httpkit"
	phttp "github.com/benya7/rss3-widget/internal/platform/net/http"
	"github.com/benya7/rss3-widget/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

type feedPorts struct{ Sessions int }

type stub struct {
	s modkit.Settings
}

func (m stub) Name() string { return m.s.Name }
func (m stub) Ports() any   { return m.s.Ports }
func (m stub) MountRoutes(r httpkit.Router) {
	modkit.Mount(r, m.s.Prefix, func(r httpkit.Router) {
		r.Get("/config", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	})
}

func TestBuild(t *testing.T) {
	s := modkit.Build(
		modkit.WithName("feeds"),
		modkit.WithPrefix("feeds/"),
		modkit.WithPorts(feedPorts{Sessions: 2}),
		modkit.WithSwagger(true),
		modkit.WithName("feeds-v2"),
	)
	if s.Name != "feeds-v2" || s.Prefix != "/feeds" || !s.Swagger {
		t.Fatalf("settings = %+v", s)
	}
	if p, ok := s.Ports.(feedPorts); !ok || p.Sessions != 2 {
		t.Fatalf("ports = %#v", s.Ports)
	}
}

func TestCleanPrefix(t *testing.T) {
	for in, want := range map[string]string{
		"":          "",
		"/":         "",
		" meta ":    "/meta",
		"/feeds/":   "/feeds",
		"//a/b//":   "/a/b",
	} {
		if got := modkit.CleanPrefix(in); got != want {
			t.Errorf("CleanPrefix(%q) = %q want %q", in, got, want)
		}
	}
}

func TestMount(t *testing.T) {
	for _, prefix := range []string{"/feeds", ""} {
		m := chi.NewRouter()
		stub{s: modkit.Build(modkit.WithPrefix(prefix))}.MountRoutes(phttp.AdaptChi(m))

		rr := httptest.NewRecorder()
		m.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, prefix+"/config", nil))
		if rr.Code != http.StatusNoContent {
			t.Fatalf("prefix %q: code = %d", prefix, rr.Code)
		}
	}
}

func TestMustPorts(t *testing.T) {
	m := stub{s: modkit.Build(modkit.WithName("feed"), modkit.WithPorts(feedPorts{Sessions: 3}))}
	if got := modkit.MustPorts[feedPorts](m); got.Sessions != 3 {
		t.Fatalf("ports = %+v", got)
	}
	testkit.MustPanic(t, func() { _ = modkit.MustPorts[string](m) })
}

func TestDeps_HTTPClient(t *testing.T) {
	if (modkit.Deps{}).HTTPClient() != http.DefaultClient {
		t.Fatal("zero deps should use the default client")
	}
	hc := &http.Client{}
	if (modkit.Deps{HTTP: hc}).HTTPClient() != hc {
		t.Fatal("expected injected client")
	}
}
