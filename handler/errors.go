package handler

import (
	"errors"
	"net/http"
)

var (
	// ErrNilResponse indicates a handler returned nil instead of a Response.
	ErrNilResponse = errors.New("handler returned nil response")
	// ErrPanic wraps a value recovered from a handler panic.
	ErrPanic = errors.New("handler panicked")
)

// HTTPError carries a status code and a client-safe message.
type HTTPError struct {
	Code int
	Key  string
	Err  error
}

// NewHTTPError creates an HTTPError. cause is kept for logs and errors.Is.
func NewHTTPError(code int, key string, cause error) HTTPError {
	return HTTPError{Code: code, Key: key, Err: cause}
}

func (e HTTPError) Error() string {
	if e.Key != "" {
		return e.Key
	}
	return http.StatusText(e.Code)
}

func (e HTTPError) Unwrap() error { return e.Err }
