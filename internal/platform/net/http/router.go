// Package http is the HTTP seam: a small router interface over chi, the JSON
// responder used by every handler, the server and the pprof mount
package http

import "net/http"

// Handler is the handler type modules register
type Handler = http.HandlerFunc

// Router is everything modules need to mount routes. It serves the tree it was built on
type Router interface {
	http.Handler

	Get(pattern string, h Handler)
	Post(pattern string, h Handler)
	Delete(pattern string, h Handler)

	Handle(pattern string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Route(pattern string, fn func(Router))
}
