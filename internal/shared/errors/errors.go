package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation       ErrorType = "validation"
	ErrorTypeConfig           ErrorType = "config"
	ErrorTypeData             ErrorType = "data"
	ErrorTypeEmpty            ErrorType = "empty"
	ErrorTypeNotFound         ErrorType = "not_found"
	ErrorTypeUnauthorized     ErrorType = "unauthorized"
	ErrorTypeForbidden        ErrorType = "forbidden"
	ErrorTypeMethodNotAllowed ErrorType = "method_not_allowed"
	ErrorTypeRateLimited      ErrorType = "rate_limited"
	ErrorTypeInternal         ErrorType = "internal"
)

// AppError carries a classification alongside the message so callers can
// decide whether a failure is fatal for the run or local to one row.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error type to an HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case ErrorTypeValidation, ErrorTypeData:
		return http.StatusBadRequest
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	case ErrorTypeForbidden:
		return http.StatusForbidden
	case ErrorTypeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case ErrorTypeRateLimited:
		return http.StatusTooManyRequests
	case ErrorTypeEmpty:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func newError(t ErrorType, message string, err error) *AppError {
	return &AppError{Type: t, Message: message, Err: err}
}

func Validation(message string) *AppError { return newError(ErrorTypeValidation, message, nil) }

func WrapValidation(message string, err error) *AppError {
	return newError(ErrorTypeValidation, message, err)
}

func Config(message string) *AppError { return newError(ErrorTypeConfig, message, nil) }

func Configf(format string, args ...any) *AppError {
	return newError(ErrorTypeConfig, fmt.Sprintf(format, args...), nil)
}

func WrapConfig(message string, err error) *AppError { return newError(ErrorTypeConfig, message, err) }

func Data(message string) *AppError { return newError(ErrorTypeData, message, nil) }

func Dataf(format string, args ...any) *AppError {
	return newError(ErrorTypeData, fmt.Sprintf(format, args...), nil)
}

func WrapData(message string, err error) *AppError { return newError(ErrorTypeData, message, err) }

func Empty(message string) *AppError { return newError(ErrorTypeEmpty, message, nil) }

func NotFound(message string) *AppError { return newError(ErrorTypeNotFound, message, nil) }

func NotFoundf(format string, args ...any) *AppError {
	return newError(ErrorTypeNotFound, fmt.Sprintf(format, args...), nil)
}

func Unauthorized(message string) *AppError { return newError(ErrorTypeUnauthorized, message, nil) }

func Forbidden(message string) *AppError { return newError(ErrorTypeForbidden, message, nil) }

func MethodNotAllowed(method string) *AppError {
	return newError(ErrorTypeMethodNotAllowed, fmt.Sprintf("method %s not allowed", method), nil)
}

func RateLimited(message string) *AppError { return newError(ErrorTypeRateLimited, message, nil) }

func Internal(message string) *AppError { return newError(ErrorTypeInternal, message, nil) }

func WrapInternal(message string, err error) *AppError {
	return newError(ErrorTypeInternal, message, err)
}

// GetType returns the type of the first AppError in err's chain, or
// ErrorTypeInternal when there is none.
func GetType(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// As exposes the standard library helper so callers importing this package
// under the name "errors" do not need a second import.
func As(err error, target any) bool { return errors.As(err, target) }

func Is(err, target error) bool { return errors.Is(err, target) }
