package apperror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// AppError carries a human readable message together with the HTTP status
// class it should be reported as. Services return these; the fiber error
// handler turns them into the JSON envelope.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func New(code int, format string, args ...interface{}) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...interface{}) *AppError {
	return New(fiber.StatusBadRequest, format, args...)
}

func Unauthorized(format string, args ...interface{}) *AppError {
	return New(fiber.StatusUnauthorized, format, args...)
}

func Forbidden(format string, args ...interface{}) *AppError {
	return New(fiber.StatusForbidden, format, args...)
}

func NotFound(format string, args ...interface{}) *AppError {
	return New(fiber.StatusNotFound, format, args...)
}

func Conflict(format string, args ...interface{}) *AppError {
	return New(fiber.StatusConflict, format, args...)
}

// IsCode reports whether err is an AppError with the given status code.
func IsCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
