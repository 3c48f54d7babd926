package utils

import (
	"errors"
	"fmt"
	"net/http"
)

type CustomError struct {
	Code    int
	Message string
	Err     error
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Code: %d, Message: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("Code: %d, Message: %s", e.Code, e.Message)
}

func (e *CustomError) Unwrap() error { return e.Err }

func New(code int, message string) error {
	return &CustomError{
		Code:    code,
		Message: message,
	}
}

// Wrap attaches an HTTP status and a client-facing message to err.
func Wrap(code int, message string, err error) error {
	return &CustomError{Code: code, Message: message, Err: err}
}

// StatusCode returns the HTTP status carried by err, or 500.
func StatusCode(err error) int {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Code != 0 {
		return ce.Code
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the client-facing message carried by err.
func PublicMessage(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Message
	}
	return http.StatusText(http.StatusInternalServerError)
}
