// Package errors maps failures to http responses.
package errors

import "net/http"

// Error is answered with its status code. An empty message falls back to the
// status text.
type Error struct {
	code    int
	message string
}

func (e *Error) Error() string {
	if e.message == "" {
		return http.StatusText(e.code)
	}
	return e.message
}

func (e *Error) StatusCode() int {
	return e.code
}

func New(code int, message string) *Error {
	return &Error{code: code, message: message}
}

func StatusCode(code int) *Error {
	return New(code, "")
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

func UnprocessableEntity(message string) *Error {
	return New(http.StatusUnprocessableEntity, message)
}
