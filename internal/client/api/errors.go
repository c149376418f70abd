package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable: no response (network failure, timeout, server down).
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized: 401 or 403.
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	// ErrMalformedResponse: a 2xx whose body lacks something required.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrServer: any other non-2xx.
	ErrServer = errors.New("request failed")
)

// Error is a non-2xx response. Message is the backend's own message, if any.
type Error struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return ErrServer
	}
}

func malformed(what string) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, what)
}
