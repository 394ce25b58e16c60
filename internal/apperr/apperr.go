// Package apperr defines the error taxonomy shared by the store and handler
// layers. Stores return these instead of raw gorm errors so handlers can map
// every failure to a status code in one place.
package apperr

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// Kind classifies an error into one of the cases the API distinguishes.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindForbidden
	KindUnauthorized
)

// Error is a typed application error with a user-safe message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func Validation(msg string) *Error   { return &Error{Kind: KindValidation, Message: msg} }
func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *Error     { return &Error{Kind: KindConflict, Message: msg} }
func Forbidden(msg string) *Error    { return &Error{Kind: KindForbidden, Message: msg} }
func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }

// Wrap converts store/infra errors into typed errors. Unknown errors become
// internal errors with a generic message so storage details never leak to
// clients. notFoundMsg is used when the underlying error is a missing record.
func Wrap(err error, notFoundMsg string) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(notFoundMsg)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return Conflict("record already exists")
	}
	return &Error{Kind: KindInternal, Message: "internal server error"}
}

// HTTPStatus maps an error to the status code the REST layer should return.
func HTTPStatus(err error) int {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
