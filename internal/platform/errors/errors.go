// Package errors is the project error type: a code for machines, a message for people,
// an optional field for validation, and the wrapped cause. Import it as perr
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies an error for transports. Values are part of the JSON envelope
type ErrorCode uint16

// Codes. Append only; the numbers are on the wire
const (
	ErrorCodeUnknown         ErrorCode = iota // unclassified
	ErrorCodePanic                            // recovered panic
	ErrorCodeUnavailable                      // transient, a retry may succeed
	ErrorCodeTooManyRequests                  // rate limited or over capacity
	ErrorCodeConflict                         // state conflict
	ErrorCodeUnauthorized                     // missing or bad credentials
	ErrorCodeForbidden                        // credentials lack access
	ErrorCodeInvalidArgument                  // bad parameter
	ErrorCodeValidation                       // input failed validation rules
	ErrorCodeJSON                             // malformed JSON
	ErrorCodeNotFound                         // no such resource
	ErrorCodeUpstream                         // dependency answered 5xx
	ErrorCodeTimeout                          // dependency did not answer in time
)

var statusByCode = map[ErrorCode]int{
	ErrorCodeUnavailable:     http.StatusServiceUnavailable,
	ErrorCodeTooManyRequests: http.StatusTooManyRequests,
	ErrorCodeConflict:        http.StatusConflict,
	ErrorCodeUnauthorized:    http.StatusUnauthorized,
	ErrorCodeForbidden:       http.StatusForbidden,
	ErrorCodeInvalidArgument: http.StatusUnprocessableEntity,
	ErrorCodeValidation:      http.StatusBadRequest,
	ErrorCodeJSON:            http.StatusBadRequest,
	ErrorCodeNotFound:        http.StatusNotFound,
	ErrorCodeUpstream:        http.StatusBadGateway,
	ErrorCodeTimeout:         http.StatusGatewayTimeout,
}

// HTTPStatus is the response status for c. Unknown and panic codes are 500
func (c ErrorCode) HTTPStatus() int {
	if s, ok := statusByCode[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Error carries a code, a message, an optional field and the wrapped cause
type Error struct {
	code  ErrorCode
	msg   string
	field string
	cause error
}

// Wire is the JSON form of an error
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.cause != nil:
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	default:
		return e.msg
	}
}

// Unwrap returns the cause
func (e *Error) Unwrap() error { return e.cause }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Field names the offending input, if any
func (e *Error) Field() string { return e.field }

// New returns an error with code and msg
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf is New with formatting
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap annotates cause with code and msg
func Wrap(cause error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, cause: cause}
}

// Wrapf is Wrap with formatting
func Wrapf(cause error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), cause: cause}
}

// NotFoundf builds an ErrorCodeNotFound error
func NotFoundf(format string, a ...any) error { return Newf(ErrorCodeNotFound, format, a...) }

// InvalidArgf builds an ErrorCodeInvalidArgument error
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

// Upstreamf builds an ErrorCodeUpstream error
func Upstreamf(format string, a ...any) error { return Newf(ErrorCodeUpstream, format, a...) }

// Unavailablef builds an ErrorCodeUnavailable error
func Unavailablef(format string, a ...any) error { return Newf(ErrorCodeUnavailable, format, a...) }

// JSONErrf builds an ErrorCodeJSON error
func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

// PanicErrf builds an ErrorCodePanic error
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// WithField returns a copy of err naming field. Foreign errors pass through
func WithField(err error, field string) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	c.field = field
	return &c
}

// As finds the first *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) && e != nil {
		return e, true
	}
	return nil, false
}

// CodeOf returns the code of the first *Error in the chain, ErrorCodeUnknown otherwise
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// HTTPStatus maps err to a response status
func HTTPStatus(err error) int { return CodeOf(err).HTTPStatus() }

// WireFrom converts err to its JSON form. Foreign errors keep their text under ErrorCodeUnknown
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return Wire{Code: e.code, Message: e.msg, Field: e.field}
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}
