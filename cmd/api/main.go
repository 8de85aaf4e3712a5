package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/platform/googlebooks"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool := openDB(ctx, cfg.Database)

	localStore, err := book.NewLocalStore(cfg.LocalStore.Path)
	if err != nil {
		log.Fatalf("cannot open local store (%s): %v", cfg.LocalStore.Path, err)
	}

	store := book.NewFallbackStore(book.NewPostgresRepo(dbPool, cfg.Database.QueryTimeout), localStore)
	deps := routerDeps{
		Books:    book.NewService(store),
		Searcher: googlebooks.NewClient(cfg.Search.BaseURL, cfg.Search.APIKey, cfg.Search.RPS),
	}
	if dbPool != nil {
		deps.DB = dbPool
	}

	rateLimiter := httpx.NewRateLimitMiddleware(cfg.Limits.RateLimitRPS, cfg.Limits.RateLimitBurst)

	handler := httpx.Chain(newRouter(deps),
		httpx.RequestIDMiddleware,
		httpx.RecoveryMiddleware,
		httpx.AccessLogMiddleware,
		httpx.MetricsMiddleware,
		httpx.SecurityHeadersMiddleware(cfg.HTTP.EnableHSTS),
		httpx.CORSMiddleware(cfg.HTTP.CORSOrigins),
		rateLimiter.Middleware,
		httpx.RequestSizeLimitMiddleware(cfg.Limits.MaxBodyBytes),
	)

	httpServer := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on %s", cfg.HTTP.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}

	rateLimiter.Close()
	if dbPool != nil {
		dbPool.Close()
	}
	if err := localStore.Close(); err != nil {
		log.Printf("local store close error: %v", err)
	}
}

// openDB returns nil only when no pool can be built. A pool that fails its
// first ping is kept; its query errors route requests to the local store.
func openDB(ctx context.Context, cfg config.Database) *pgxpool.Pool {
	dsn := cfg.ConnString()

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Printf("invalid database config (%s): %v; using local store", config.RedactDSN(dsn), err)
		return nil
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Printf("cannot create db pool (%s): %v; using local store", config.RedactDSN(dsn), err)
		return nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		log.Printf("cannot ping database (%s): %v; requests fall back to the local store until it recovers", config.RedactDSN(dsn), err)
		return pool
	}

	log.Println("database connection OK")
	return pool
}
