package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// chiRouter adapts any chi.Router, root mux or subrouter alike
type chiRouter struct{ r chi.Router }

// AdaptChi wraps a chi router as a Router
func AdaptChi(r chi.Router) Router { return chiRouter{r: r} }

func (c chiRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) { c.r.ServeHTTP(w, r) }

func (c chiRouter) Get(p string, h Handler)    { c.r.Method(http.MethodGet, p, h) }
func (c chiRouter) Post(p string, h Handler)   { c.r.Method(http.MethodPost, p, h) }
func (c chiRouter) Delete(p string, h Handler) { c.r.Method(http.MethodDelete, p, h) }

func (c chiRouter) Handle(p string, h http.Handler)           { c.r.Handle(p, h) }
func (c chiRouter) Use(mw ...func(http.Handler) http.Handler) { c.r.Use(mw...) }

func (c chiRouter) Route(p string, fn func(Router)) {
	c.r.Route(p, func(sub chi.Router) { fn(chiRouter{r: sub}) })
}
