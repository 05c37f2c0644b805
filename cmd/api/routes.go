package main

import (
	"context"
	"net/http"
	"time"

	"libraryapi/internal/book"
	"libraryapi/internal/config"
	"libraryapi/internal/httpx"
	"libraryapi/internal/loan"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type handlers struct {
	books *book.HTTPHandler
	loans *loan.HTTPHandler
	db    pinger
}

func newRouter(h handlers) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("POST /api/books", h.books.Create)
	router.HandleFunc("GET /api/books", h.books.Find)
	router.HandleFunc("GET /api/books/{id}", h.books.Get)
	router.HandleFunc("PUT /api/books/{id}", h.books.Update)
	router.HandleFunc("DELETE /api/books/{id}", h.books.Delete)
	router.HandleFunc("GET /api/books/{id}/loans", h.loans.ListByBook)

	router.HandleFunc("POST /api/loans", h.loans.Create)
	router.HandleFunc("GET /api/loans", h.loans.Find)
	router.HandleFunc("GET /api/loans/overdue", h.loans.Overdue)
	router.HandleFunc("GET /api/loans/{id}", h.loans.Get)
	router.HandleFunc("PATCH /api/loans/{id}", h.loans.Return)

	return router
}

func newRateLimiter(cfg config.Config) *httpx.RateLimitMiddleware {
	return httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.TrustProxyHeaders)
}

func withMiddleware(cfg config.Config, limiter *httpx.RateLimitMiddleware, next http.Handler) http.Handler {
	return httpx.Chain(next,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware,
		httpx.RecoveryMiddleware,
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.CORSAllowedOrigins),
		limiter.Middleware,
		httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
	)
}
