// Package net carries request identity through contexts and renders the JSON envelope
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type sessionKey struct{}

// WithRequest records the request id and the feed session a request targets.
// The request id lives under chi's key so middleware.RequestID and this package agree
func WithRequest(ctx context.Context, reqID, sessionID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if sessionID != "" {
		ctx = context.WithValue(ctx, sessionKey{}, sessionID)
	}
	return ctx
}

// RequestID is the id set by middleware.RequestID or WithRequest
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// SessionID is the feed session id, if the request names one
func SessionID(ctx context.Context) string {
	s, _ := ctx.Value(sessionKey{}).(string)
	return s
}
