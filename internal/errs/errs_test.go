package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorBodyIsList(t *testing.T) {
	err := NewValidationError([]string{"pages must be an integer", "author must be a string"})

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, []string{"pages must be an integer", "author must be a string"}, err.Body())
	assert.Equal(t, "pages must be an integer; author must be a string", err.Error())
}

func TestValidationErrorNilMessagesStillList(t *testing.T) {
	err := NewValidationError(nil)

	assert.Equal(t, []string{}, err.Body())
}

func TestNotFoundErrorBodyIsString(t *testing.T) {
	err := NewNotFoundError("There is no book with an isbn '%s'", "123")

	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Equal(t, "There is no book with an isbn '123'", err.Body())
}

func TestStatusErrors(t *testing.T) {
	assert.Equal(t, "Internal Server Error", NewInternalServerError().Message)
	assert.Equal(t, http.StatusMethodNotAllowed, NewStatusError(http.StatusMethodNotAllowed).Status)
	assert.Equal(t, http.StatusConflict, NewConflictError("dup").Status)
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("create book: %w", NewConflictError("dup"))

	var apiErr *Error
	assert.True(t, errors.As(wrapped, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
}
