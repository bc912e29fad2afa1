// Package failure carries client facing errors with the HTTP status they map to.
// Anything that is not a *Failure is treated as an internal error.
package failure

import (
	"errors"
	"net/http"
)

type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "you are not allowed to perform this action"}

func (e *Failure) Error() string {
	return e.Message
}

func New(code int, message string) error {
	return &Failure{Code: code, Message: message}
}

// BadRequest keeps the message of err. It returns nil for a nil err.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return New(http.StatusForbidden, msg)
}

func NotFound(msg string) error {
	return New(http.StatusNotFound, msg)
}

func Conflict(msg string) error {
	return New(http.StatusConflict, msg)
}

// InternalError keeps the message of err. It returns nil for a nil err.
func InternalError(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusInternalServerError, err.Error())
}

// GetCode finds the first *Failure in the chain of err.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// IsClientError reports whether err carries a 4xx status.
func IsClientError(err error) bool {
	code := GetCode(err)

	return code >= http.StatusBadRequest && code < http.StatusInternalServerError
}
