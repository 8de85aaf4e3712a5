package main

import (
	"context"
	"net/http"
	"time"

	"bookcatalog/internal/book"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/search"
	"bookcatalog/internal/web"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type routerDeps struct {
	Books    *book.Service
	Searcher search.Searcher
	DB       pinger // nil when the relational store never came up
}

func newRouter(deps routerDeps) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if deps.DB == nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := deps.DB.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	router.HandleFunc("GET /metrics", httpx.MetricsHandler)

	book.NewHTTPHandler(deps.Books).Register(router)
	search.NewHTTPHandler(deps.Searcher).Register(router)
	web.Register(router)

	return router
}
