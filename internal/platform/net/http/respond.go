package http

import (
	stdhttp "net/http"

	pnet "github.com/benya7/rss3-widget/internal/platform/net"
)

// Envelope is the response body shape, see pnet.Envelope
type Envelope = pnet.Envelope

// Response is what return-style handlers produce. A Body that is an error
// becomes the error envelope and picks its own status
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// OK is a 200 with data
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created is a 201 with data
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// NoContent is an empty 204
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error maps err to its status and envelope
func Error(err error) Response { return Response{Body: err} }

// Handle adapts a Response-returning func to a Handler
func Handle(h func(*stdhttp.Request) Response) Handler {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) { h(r).Write(w, r) }
}

// Write renders resp, wrapping Body in the envelope
func (resp Response) Write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	reqID := pnet.RequestID(r.Context())

	if err, ok := resp.Body.(error); ok && err != nil {
		status, env := pnet.Failure(err, reqID)
		pnet.WriteJSON(w, status, env)
		return
	}

	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	pnet.WriteJSON(w, status, pnet.Success(status, resp.Body, reqID))
}
