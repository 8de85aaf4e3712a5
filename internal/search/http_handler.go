package search

import (
	"context"
	"log"
	"net/http"

	"bookcatalog/internal/httpx"
)

// Searcher returns the upstream catalog's raw JSON for a title query.
type Searcher interface {
	SearchRaw(ctx context.Context, title string) ([]byte, error)
}

type HTTPHandler struct {
	searcher Searcher
}

func NewHTTPHandler(searcher Searcher) *HTTPHandler {
	return &HTTPHandler{searcher: searcher}
}

func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /books/search", h.Search)
}

// Search handles GET /books/search
// @Summary Search the external catalog by title
// @Tags books
// @Produce json
// @Param title query string true "Title to search for"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books/search [get]
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		httpx.JSONError(w, http.StatusBadRequest, "Title parameter is required")
		return
	}

	body, err := h.searcher.SearchRaw(r.Context(), title)
	if err != nil {
		log.Printf("search proxy error request_id=%s error=%v", httpx.RequestIDFrom(r), err)
		httpx.JSONError(w, http.StatusInternalServerError, "Failed to search books")
		return
	}

	httpx.RawJSON(w, http.StatusOK, body)
}
