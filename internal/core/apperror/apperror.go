package apperror

import (
	"errors"
	"net/http"
)

// Error is a caller-facing failure. Status and Detail are written to the client as is.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func New(status int, detail string) *Error {
	return &Error{Status: status, Detail: detail}
}

func NotFound(detail string) *Error     { return New(http.StatusNotFound, detail) }
func BadRequest(detail string) *Error   { return New(http.StatusBadRequest, detail) }
func Unauthorized(detail string) *Error { return New(http.StatusUnauthorized, detail) }
func Unprocessable(detail string) *Error {
	return New(http.StatusUnprocessableEntity, detail)
}

// As unwraps err into an *Error. ok is false for plain errors.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
