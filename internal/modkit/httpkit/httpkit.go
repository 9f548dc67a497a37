// Package httpkit is the handler surface feature modules write against.
// Handlers return (value, error); the envelope, status mapping and body binding happen here
package httpkit

import (
	"net/http"

	phttp "github.com/benya7/rss3-widget/internal/platform/net/http"
	"github.com/benya7/rss3-widget/internal/platform/net/http/bind"
)

type (
	// Router is the platform router seam
	Router = phttp.Router
	// Handler is a plain handler func
	Handler = phttp.Handler
	// Response lets a handler pick its own status
	Response = phttp.Response
	// Envelope is the wire body, referenced by swagger annotations
	Envelope = phttp.Envelope
)

// Created answers 201 with data
func Created(data any) Response { return phttp.Created(data) }

// NoContent answers an empty 204
func NoContent() Response { return phttp.NoContent() }

// Param reads a path parameter
func Param(r *http.Request, name string) string { return phttp.Param(r, name) }

// Call adapts fn. A returned Response is written as is, any other value is a 200
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response { return respond(fn(r)) })
}

// JSON binds and validates the request body into T before calling fn
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return phttp.Error(err)
		}
		return respond(fn(r, in))
	})
}

func respond(out any, err error) Response {
	if err != nil {
		return phttp.Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return phttp.OK(out)
}

// Get mounts fn under GET
func Get(r Router, path string, fn func(*http.Request) (any, error)) { r.Get(path, Call(fn)) }

// Post mounts fn under POST, without a body
func Post(r Router, path string, fn func(*http.Request) (any, error)) { r.Post(path, Call(fn)) }

// Delete mounts fn under DELETE
func Delete(r Router, path string, fn func(*http.Request) (any, error)) { r.Delete(path, Call(fn)) }

// PostJSON mounts fn under POST with a bound T body
func PostJSON[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	r.Post(path, JSON(fn))
}
