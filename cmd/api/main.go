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

	"libraryapi/internal/book"
	"libraryapi/internal/config"
	"libraryapi/internal/loan"
	"libraryapi/internal/memstore"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repositories struct {
	books book.Repository
	loans loan.Repository
	db    pinger
	close func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	repos := openRepositories(cfg)
	defer repos.close()

	bookService := book.NewService(repos.books)
	loanService := loan.NewService(repos.loans, cfg.LoanPeriodDays)

	router := newRouter(handlers{
		books: book.NewHTTPHandler(bookService),
		loans: loan.NewHTTPHandler(loanService, bookService),
		db:    repos.db,
	})

	limiter := newRateLimiter(cfg)
	defer limiter.Close()

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      withMiddleware(cfg, limiter, router),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go loan.NewOverdueReporter(loanService, cfg.OverdueReportInterval).Run(ctx)

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s store=%s", cfg.Addr, cfg.StoreDriver)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		log.Fatalf("server error: %v", err)
	case <-ctx.Done():
	}

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func openRepositories(cfg config.Config) repositories {
	if cfg.StoreDriver == config.DriverMemory {
		log.Println("using in-memory store")
		store := memstore.New()
		return repositories{books: store.Books(), loans: store.Loans(), db: store, close: func() {}}
	}

	pool := mustOpenDB(cfg.DatabaseDSN)
	return repositories{
		books: book.NewPostgresRepo(pool, cfg.DBTimeout),
		loans: loan.NewPostgresRepo(pool, cfg.DBTimeout),
		db:    pool,
		close: pool.Close,
	}
}

func mustOpenDB(dsn string) *pgxpool.Pool {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("cannot create db pool: %v", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Fatalf("cannot ping database (%s): %v", config.RedactDSN(dsn), err)
	}
	log.Println("database connection OK")
	return pool
}
