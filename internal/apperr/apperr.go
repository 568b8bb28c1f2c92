// Package apperr defines the error taxonomy the HTTP boundary translates
// into status codes and {error, code} bodies.
package apperr

import "net/http"

const (
	CodeValidation = "VALIDATION_ERROR"
	CodeAuth       = "AUTH_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT"
	CodeServer     = "SERVER_ERROR"
)

type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func Validation(message string) *Error {
	if message == "" {
		message = "Invalid data"
	}
	return &Error{Status: http.StatusBadRequest, Code: CodeValidation, Message: message}
}

func Auth(message string) *Error {
	if message == "" {
		message = "Unauthorized"
	}
	return &Error{Status: http.StatusUnauthorized, Code: CodeAuth, Message: message}
}

func NotFound(resource string) *Error {
	if resource == "" {
		resource = "Resource"
	}
	return &Error{Status: http.StatusNotFound, Code: CodeNotFound, Message: resource + " not found"}
}

func Conflict(message string) *Error {
	if message == "" {
		message = "Resource already exists"
	}
	return &Error{Status: http.StatusConflict, Code: CodeConflict, Message: message}
}
