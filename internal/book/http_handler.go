package book

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"bookstore/internal/errs"
	"bookstore/internal/httpx"
)

// DeletedMessage is the body message of a successful delete.
const DeletedMessage = "Book deleted"

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Register mounts the /books routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /books", h.List)
	mux.HandleFunc("POST /books", h.Create)
	mux.HandleFunc("GET /books/{isbn}", h.GetByISBN)
	mux.HandleFunc("PUT /books/{isbn}", h.Update)
	mux.HandleFunc("DELETE /books/{isbn}", h.Delete)
}

type listResponse struct {
	Books []Book `json:"books"`
}

type bookResponse struct {
	Book Book `json:"book"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// List handles GET /books
// @Summary List books
// @Tags books
// @Produce json
// @Success 200 {object} listResponse
// @Router /books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSONOK(w, listResponse{Books: books})
}

// GetByISBN handles GET /books/{isbn}
// @Summary Get book by ISBN
// @Tags books
// @Produce json
// @Param isbn path string true "Book ISBN"
// @Success 200 {object} bookResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{isbn} [get]
func (h *HTTPHandler) GetByISBN(w http.ResponseWriter, r *http.Request) {
	isbn := NormalizeISBN(r.PathValue("isbn"))
	b, err := h.service.GetByISBN(r.Context(), isbn)
	if err != nil {
		httpx.Error(w, r, apiError(err, isbn))
		return
	}
	httpx.JSONOK(w, bookResponse{Book: b})
}

// Create handles POST /books
// @Summary Add a book
// @Tags books
// @Accept json
// @Produce json
// @Success 201 {object} bookResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := decodePayload(r.Body)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	b, err := h.service.Create(r.Context(), p)
	if err != nil {
		isbn, _ := p["isbn"].(string)
		httpx.Error(w, r, apiError(err, NormalizeISBN(isbn)))
		return
	}
	httpx.JSONCreated(w, bookResponse{Book: b})
}

// Update handles PUT /books/{isbn}
// @Summary Replace a book
// @Tags books
// @Accept json
// @Produce json
// @Param isbn path string true "Book ISBN"
// @Success 200 {object} bookResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{isbn} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	isbn := NormalizeISBN(r.PathValue("isbn"))
	p, err := decodePayload(r.Body)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	b, err := h.service.Update(r.Context(), isbn, p)
	if err != nil {
		httpx.Error(w, r, apiError(err, isbn))
		return
	}
	httpx.JSONOK(w, bookResponse{Book: b})
}

// Delete handles DELETE /books/{isbn}
// @Summary Delete a book
// @Tags books
// @Produce json
// @Param isbn path string true "Book ISBN"
// @Success 200 {object} messageResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{isbn} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	isbn := NormalizeISBN(r.PathValue("isbn"))
	if err := h.service.Delete(r.Context(), isbn); err != nil {
		httpx.Error(w, r, apiError(err, isbn))
		return
	}
	httpx.JSONOK(w, messageResponse{Message: DeletedMessage})
}

// decodePayload reads a single JSON object, keeping numbers as json.Number
// so the schema can tell integers from other values.
func decodePayload(body io.Reader) (Payload, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var p Payload
	if err := dec.Decode(&p); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, errs.NewStatusError(http.StatusRequestEntityTooLarge)
		}
		return nil, errs.NewValidationError([]string{"request body must be a JSON object"})
	}
	if p == nil {
		return nil, errs.NewValidationError([]string{"request body must be a JSON object"})
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errs.NewValidationError([]string{"request body must contain a single JSON object"})
	}
	return p, nil
}

// apiError maps service errors onto client-facing errors. isbn is the
// identifier the request targeted.
func apiError(err error, isbn string) error {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return errs.NewValidationError(verr.Messages)
	case errors.Is(err, ErrNotFound):
		return errs.NewNotFoundError("There is no book with an isbn '%s'", isbn)
	case errors.Is(err, ErrAlreadyExists):
		return errs.NewConflictError("A book with isbn '%s' already exists", isbn)
	}
	return err
}
