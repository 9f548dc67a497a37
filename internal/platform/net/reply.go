package net

import (
	"encoding/json"
	"net/http"

	perr "github.com/benya7/rss3-widget/internal/platform/errors"
)

// Envelope is the JSON body every endpoint answers with, success or not
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	Retryable  bool           `json:"retryable,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Success wraps data for status
func Success(status int, data any, reqID string) Envelope {
	return Envelope{
		StatusCode: status,
		Status:     http.StatusText(status),
		RequestID:  reqID,
		Data:       data,
	}
}

// Failure maps err onto its HTTP status and error envelope.
// Retryable tells clients a later attempt may succeed; nothing retries server side
func Failure(err error, reqID string) (int, Envelope) {
	if err == nil {
		return http.StatusOK, Success(http.StatusOK, nil, reqID)
	}
	status := perr.HTTPStatus(err)
	w := perr.WireFrom(err)
	return status, Envelope{
		StatusCode: status,
		Status:     http.StatusText(status),
		Code:       w.Code,
		Error:      w.Message,
		Field:      w.Field,
		Retryable:  perr.Retryable(err),
		RequestID:  reqID,
	}
}

// WriteJSON encodes v as the response body. Encoding errors are dropped once the header is out
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError answers with the error envelope for err
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := Failure(err, RequestID(r.Context()))
	WriteJSON(w, status, body)
}
