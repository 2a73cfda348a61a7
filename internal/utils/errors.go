package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// CustomError carries an HTTP status code alongside a message.
type CustomError struct {
	Code    int
	Message string
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.Code, e.Message)
}

func New(code int, message string) error {
	return &CustomError{
		Code:    code,
		Message: message,
	}
}

// StatusCode returns the HTTP status attached to err, or 500 when err does
// not wrap a CustomError.
func StatusCode(err error) int {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Code != 0 {
		return ce.Code
	}
	return http.StatusInternalServerError
}

// Message returns the user-facing message attached to err.
func Message(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Message
	}
	return err.Error()
}
