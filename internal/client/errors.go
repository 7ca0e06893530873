package client

import (
	"errors"
	"net/http"
)

// TransportError is any non-2xx response or network failure. Status is 0 when
// no response was received.
type TransportError struct {
	Message string
	Status  int
	Err     error
}

func (e *TransportError) Error() string {
	if e.Message == "" {
		return "request failed"
	}
	return e.Message
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) HTTPStatus() int { return e.Status }

// AuthenticationError is a rejected login.
type AuthenticationError struct {
	Message string
	Status  int
}

func (e *AuthenticationError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return e.Message
}

func (e *AuthenticationError) HTTPStatus() int { return e.Status }

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var hs interface{ HTTPStatus() int }
	if errors.As(err, &hs) {
		return hs.HTTPStatus()
	}
	return 0
}

func IsNotFound(err error) bool { return StatusOf(err) == http.StatusNotFound }

func IsUnauthorized(err error) bool { return StatusOf(err) == http.StatusUnauthorized }
