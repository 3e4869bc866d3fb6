package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error carries the HTTP status and a stable code for a failed request.
// Status below 500 marks the fault as handled: the caller sees the response and
// the request's writes are rolled back without escalating.
type Error struct {
	Status  int
	Code    string
	Err     error
	Details map[string]string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func BadRequest(code string, err error) *Error { return New(http.StatusBadRequest, code, err) }

func NotFound(code string, err error) *Error { return New(http.StatusNotFound, code, err) }

func Internal(code string, err error) *Error { return New(http.StatusInternalServerError, code, err) }

// Handled reports whether err is an *Error with a client-side status.
func Handled(err error) bool {
	var e *Error
	if !errors.As(err, &e) || e == nil {
		return false
	}
	return e.Status > 0 && e.Status < http.StatusInternalServerError
}
