package request

import "errors"

// Error is the normalized failure of an execution. Status is the HTTP status
// when the cause carried one, else 0.
type Error struct {
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Normalize converts any error into an *Error. Causes exposing HTTPStatus()
// contribute their status.
func Normalize(err error) *Error {
	if err == nil {
		return nil
	}
	var already *Error
	if errors.As(err, &already) {
		return already
	}
	out := &Error{Message: err.Error(), Err: err}
	var hs interface{ HTTPStatus() int }
	if errors.As(err, &hs) {
		out.Status = hs.HTTPStatus()
	}
	if out.Message == "" {
		out.Message = "request failed"
	}
	return out
}
