package net_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "github.com/benya7/rss3-widget/internal/platform/errors"
	pnet "github.com/benya7/rss3-widget/internal/platform/net"
)

func TestSuccess(t *testing.T) {
	env := pnet.Success(http.StatusCreated, map[string]string{"id": "s1"}, "req-1")
	if env.StatusCode != 201 || env.Status != "Created" || env.RequestID != "req-1" {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestFailure(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		status    int
		retryable bool
	}{
		{"nil", nil, http.StatusOK, false},
		{"not found", perr.NotFoundf("feed session %q not found", "s1"), http.StatusNotFound, false},
		{"busy", perr.Newf(perr.ErrorCodeTooManyRequests, "too many feed sessions"), http.StatusTooManyRequests, true},
		{"upstream", perr.Upstreamf("rss3 notes answered 502"), http.StatusBadGateway, true},
		{"plain", http.ErrHandlerTimeout, http.StatusInternalServerError, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			status, env := pnet.Failure(c.err, "rid")
			if status != c.status || env.StatusCode != c.status {
				t.Fatalf("status = %d/%d, want %d", status, env.StatusCode, c.status)
			}
			if env.Retryable != c.retryable {
				t.Fatalf("retryable = %v, want %v", env.Retryable, c.retryable)
			}
			if c.err != nil && env.Error == "" {
				t.Fatalf("error message missing: %+v", env)
			}
		})
	}
}

func TestFailure_Field(t *testing.T) {
	err := perr.WithField(perr.InvalidArgf("limit must be at most 100"), "limit")
	_, env := pnet.Failure(err, "")
	if env.Field != "limit" {
		t.Fatalf("field = %q", env.Field)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/feeds/nope", nil)
	req = req.WithContext(pnet.WithRequest(req.Context(), "req-9", ""))

	pnet.WriteError(rr, req, perr.NotFoundf("feed session %q not found", "nope"))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("code = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}
	var env pnet.Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.RequestID != "req-9" || env.Code != perr.ErrorCodeNotFound {
		t.Fatalf("envelope = %+v", env)
	}
}
