package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()
	Register(mux)

	tests := []struct {
		path     string
		status   int
		contains string
	}{
		{"/", http.StatusOK, `<script src="/static/app.js"`},
		{"/static/app.js", http.StatusOK, "/books/search?title="},
		{"/static/missing.js", http.StatusNotFound, ""},
		{"/static/app.js", http.StatusOK, "window.confirm(\"¿Está seguro de que desea eliminar este libro?\")"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.contains)
		})
	}
}
