package rss3

import (
	"errors"
	"io"
	"strconv"

	perr "github.com/benya7/rss3-widget/internal/platform/errors"
)

// StatusError is returned for answers outside 2xx/3xx. Body is the raw response body
type StatusError struct {
	Status int
	Body   string
	Err    error
}

// Error interface
func (e *StatusError) Error() string { return e.Err.Error() }

// Unwrap interface
func (e *StatusError) Unwrap() error { return e.Err }

// HTTPStatus reports the upstream status code
func (e *StatusError) HTTPStatus() int { return e.Status }

func newStatusError(endpoint string, status int, body []byte) *StatusError {
	return &StatusError{
		Status: status,
		Body:   string(body),
		Err:    perr.Newf(perr.FromHTTPStatus(status), "rss3 %s status %d: %s", endpoint, status, string(body)),
	}
}

// AsStatus returns the StatusError in err's chain, if any
func AsStatus(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsNotFound reports an upstream 404
func IsNotFound(err error) bool {
	se, ok := AsStatus(err)
	return ok && se.Status == 404
}

func statusClass(code int) string {
	return strconv.Itoa(code/100) + "xx"
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}
