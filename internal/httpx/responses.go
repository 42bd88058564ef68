package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"bookstore/internal/errs"
)

// ErrorResponse is the error envelope shared by every failing route.
// Message is a string, or a list of strings for validation failures.
type ErrorResponse struct {
	Error   ErrorResponseBody `json:"error"`
	Message any               `json:"message"`
}

type ErrorResponseBody struct {
	Message any `json:"message"`
	Status  int `json:"status"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

func JSONOK(w http.ResponseWriter, v any) {
	JSON(w, http.StatusOK, v)
}

func JSONCreated(w http.ResponseWriter, v any) {
	JSON(w, http.StatusCreated, v)
}

// WriteError writes the envelope for an API error.
func WriteError(w http.ResponseWriter, e *errs.Error) {
	body := e.Body()
	JSON(w, e.Status, ErrorResponse{
		Error:   ErrorResponseBody{Message: body, Status: e.Status},
		Message: body,
	})
}

// Error writes err as an envelope. Errors that are not *errs.Error are
// logged with the request logger and answered with a generic 500.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *errs.Error
	if errors.As(err, &apiErr) {
		WriteError(w, apiErr)
		return
	}
	zerolog.Ctx(r.Context()).Error().Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("request failed")
	WriteError(w, errs.NewInternalServerError())
}
