// Package errs defines the HTTP error types returned to API clients.
//
// Every error carries its HTTP status and a message. Validation failures
// carry a list of messages, one per violated constraint; every other kind
// carries a single string.
package errs

import (
	"fmt"
	"net/http"
	"strings"
)

// Error is an API error with a status code and a client-facing message.
type Error struct {
	Status   int
	Message  string
	Messages []string
}

func (e *Error) Error() string {
	if len(e.Messages) > 0 {
		return strings.Join(e.Messages, "; ")
	}
	return e.Message
}

// Body returns the message in its wire form: a list for validation errors,
// a string otherwise.
func (e *Error) Body() any {
	if e.Messages != nil {
		return e.Messages
	}
	return e.Message
}

// NewValidationError builds a 400 listing every violated constraint.
func NewValidationError(messages []string) *Error {
	if messages == nil {
		messages = []string{}
	}
	return &Error{Status: http.StatusBadRequest, Messages: messages}
}

func NewNotFoundError(format string, args ...any) *Error {
	return &Error{Status: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...any) *Error {
	return &Error{Status: http.StatusConflict, Message: fmt.Sprintf(format, args...)}
}

// NewStatusError builds an error whose message is the standard status text.
func NewStatusError(status int) *Error {
	return &Error{Status: status, Message: http.StatusText(status)}
}

// NewInternalServerError hides the cause; callers log it separately.
func NewInternalServerError() *Error {
	return NewStatusError(http.StatusInternalServerError)
}
