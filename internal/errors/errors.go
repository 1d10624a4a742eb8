package errs

import (
	"errors"
	"fmt"
)

//* Type groups errors by how they are reported to the client
type Type string

const (
	TypeInternal   Type = "internal"
	TypeBadRequest Type = "bad_request"
	TypeNotFound   Type = "not_found"
	TypeConflict   Type = "conflict"
)

//* AppError carries the http status and the client-facing message of a failure.
// `Err` is the cause and is only logged.
type AppError struct {
	Err  error
	Msg  string
	Type Type
	Code int
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s (%d): %s", e.Type, e.Code, e.Msg)
	}
	return fmt.Sprintf("%s (%d): %s: %v", e.Type, e.Code, e.Msg, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(err error, msg string, typ Type, code int) *AppError {
	return &AppError{
		Err:  err,
		Msg:  msg,
		Type: typ,
		Code: code,
	}
}

// IsType reports whether err is an `*AppError` of type `typ`.
func IsType(err error, typ Type) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == typ
	}
	return false
}
