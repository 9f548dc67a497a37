package errors

// HTTP dependency helpers: mapping upstream status codes to ErrorCode and retry semantics

import (
	"context"
	stderrs "errors"
	"net"
	"net/http"
)

// FromHTTPStatus maps a status code answered by a dependency to an ErrorCode
func FromHTTPStatus(status int) ErrorCode {
	switch {
	case status == http.StatusNotFound:
		return ErrorCodeNotFound
	case status == http.StatusUnauthorized:
		return ErrorCodeUnauthorized
	case status == http.StatusForbidden:
		return ErrorCodeForbidden
	case status == http.StatusTooManyRequests:
		return ErrorCodeTooManyRequests
	case status == http.StatusConflict:
		return ErrorCodeConflict
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return ErrorCodeInvalidArgument
	case status == http.StatusServiceUnavailable:
		return ErrorCodeUnavailable
	case status == http.StatusGatewayTimeout, status == http.StatusRequestTimeout:
		return ErrorCodeTimeout
	case status >= 500:
		return ErrorCodeUpstream
	case status >= 400:
		return ErrorCodeInvalidArgument
	}
	return ErrorCodeUnknown
}

// Retryable reports a transient dependency condition. Local cancellations never are.
// Nothing in the feed pipeline retries; this only feeds the envelope hint
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}

	switch CodeOf(err) {
	case ErrorCodeUnavailable, ErrorCodeTooManyRequests, ErrorCodeTimeout, ErrorCodeUpstream:
		return true
	}

	var ne net.Error
	if stderrs.As(err, &ne) && ne.Timeout() {
		return true
	}
	return false
}
