package book

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"bookcatalog/internal/httpx"
)

const (
	msgRequiredFields = "ISBN, título y autor son campos obligatorios"
	msgNotFound       = "Libro no encontrado"
	msgDeleted        = "Libro eliminado correctamente"
	msgBodyTooLarge   = "Cuerpo de la solicitud demasiado grande"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Register mounts the book routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /books", h.List)
	mux.HandleFunc("POST /books", h.Create)
	mux.HandleFunc("GET /books/{id}", h.Get)
	mux.HandleFunc("PUT /books/{id}", h.Update)
	mux.HandleFunc("DELETE /books/{id}", h.Delete)
}

// List handles GET /books
// @Summary List books
// @Tags books
// @Produce json
// @Success 200 {array} Book
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		h.internalError(w, r, "list", err, "Error al obtener libros")
		return
	}
	httpx.JSONSuccess(w, books)
}

// Get handles GET /books/{id}
// @Summary Get book by id
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} Book
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, msgNotFound)
		return
	}

	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, msgNotFound)
			return
		}
		h.internalError(w, r, "get", err, "Error al obtener libro")
		return
	}
	httpx.JSONSuccess(w, b)
}

// Create handles POST /books
// @Summary Create book
// @Tags books
// @Accept json
// @Produce json
// @Param request body Input true "Book"
// @Success 201 {object} Book
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	const failMsg = "Error al añadir libro"

	in, err := decodeInput(r)
	if err != nil {
		h.decodeError(w, r, "create", err, failMsg)
		return
	}

	b, err := h.service.Create(r.Context(), in)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			httpx.JSONError(w, http.StatusBadRequest, msgRequiredFields)
			return
		}
		h.internalError(w, r, "create", err, failMsg)
		return
	}
	httpx.JSONSuccessCreated(w, b)
}

// Update handles PUT /books/{id}
// @Summary Update book
// @Tags books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Param request body Input true "Book"
// @Success 200 {object} Book
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books/{id} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	const failMsg = "Error al actualizar libro"

	in, err := decodeInput(r)
	if err != nil {
		h.decodeError(w, r, "update", err, failMsg)
		return
	}

	if err := h.service.Validate(in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, msgRequiredFields)
		return
	}

	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, msgNotFound)
		return
	}

	b, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			httpx.JSONError(w, http.StatusBadRequest, msgRequiredFields)
		case errors.Is(err, ErrNotFound):
			httpx.JSONError(w, http.StatusNotFound, msgNotFound)
		default:
			h.internalError(w, r, "update", err, failMsg)
		}
		return
	}
	httpx.JSONSuccess(w, b)
}

// Delete handles DELETE /books/{id}
// @Summary Delete book
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} httpx.MessageResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, msgNotFound)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, msgNotFound)
			return
		}
		h.internalError(w, r, "delete", err, "Error al eliminar libro")
		return
	}
	httpx.JSONMessage(w, msgDeleted)
}

var errTrailingData = errors.New("unexpected data after JSON body")

// decodeInput requires the body to hold exactly one JSON value.
func decodeInput(r *http.Request) (Input, error) {
	var in Input
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&in); err != nil {
		return Input{}, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			err = errTrailingData
		}
		return Input{}, err
	}
	return in, nil
}

// pathID reports false for ids that cannot name a stored book.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (h *HTTPHandler) decodeError(w http.ResponseWriter, r *http.Request, op string, err error, message string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		httpx.JSONError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		return
	}
	h.internalError(w, r, op, err, message)
}

func (h *HTTPHandler) internalError(w http.ResponseWriter, r *http.Request, op string, err error, message string) {
	log.Printf("book handler error op=%s request_id=%s error=%v", op, httpx.RequestIDFrom(r), err)
	httpx.JSONError(w, http.StatusInternalServerError, message)
}
