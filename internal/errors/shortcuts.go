package errs

import (
	"fmt"
	"net/http"
)

//* 500, the cause is hidden from the client
func NewInternalError(err error) *AppError {
	return NewAppError(err, "internal server error", TypeInternal, http.StatusInternalServerError)
}

//* 400
func NewBadRequest(err error, msg string) *AppError {
	return NewAppError(err, msg, TypeBadRequest, http.StatusBadRequest)
}

//* 404
func NewNotFound(err error, msg string) *AppError {
	return NewAppError(err, msg, TypeNotFound, http.StatusNotFound)
}

//* 409
func NewConflict(err error, msg string) *AppError {
	return NewAppError(err, msg, TypeConflict, http.StatusConflict)
}

// 404 for an unknown service id
func NewServiceNotFound(id string) *AppError {
	msg := fmt.Sprintf("service not found: id=%s", id)
	return NewNotFound(nil, msg)
}
