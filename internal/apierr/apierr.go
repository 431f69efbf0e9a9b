package apierr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error carries an HTTP status, a stable machine-readable code and the
// underlying cause. The cause is for logs only and must never reach the
// response body.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	if e.Code != "" {
		return e.Code
	}
	return fmt.Sprintf("api error (%d)", e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Unauthenticated(err error) *Error {
	return New(fiber.StatusUnauthorized, "unauthenticated", err)
}

func Forbidden(err error) *Error {
	return New(fiber.StatusForbidden, "forbidden", err)
}

func NotFound(err error) *Error {
	return New(fiber.StatusNotFound, "not_found", err)
}

func Conflict(err error) *Error {
	return New(fiber.StatusConflict, "conflict", err)
}

func Validation(err error) *Error {
	return New(fiber.StatusBadRequest, "validation", err)
}

func Internal(err error) *Error {
	return New(fiber.StatusInternalServerError, "internal", err)
}

// From extracts an *Error from err, wrapping unknown errors as internal.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Internal(err)
}
