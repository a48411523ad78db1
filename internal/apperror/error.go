package apperror

import (
	"errors"
	"net/http"
)

type Code string

const (
	CodeValidation   Code = "validation"
	CodeNotFound     Code = "not_found"
	CodeUnauthorized Code = "unauthorized"
	CodeInternal     Code = "internal"
)

type Error struct {
	Code    Code
	Message string
	// Fields holds per-field validation messages, in form order.
	Fields []string
}

func (e *Error) Error() string {
	return e.Message
}

func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Validation builds a validation error from per-field messages.
// The joined message is what both the flash and the JSON payload carry.
func Validation(fields ...string) *Error {
	msg := ""
	for i, f := range fields {
		if i > 0 {
			msg += ", "
		}
		msg += f
	}
	return &Error{
		Code:    CodeValidation,
		Message: msg,
		Fields:  fields,
	}
}

func GetCode(err error) Code {
	if err == nil {
		return ""
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}

	return CodeInternal
}

// HTTPStatus maps an error to the status the client sees. Unauthorized is
// included for completeness; the auth flow normally redirects instead.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
