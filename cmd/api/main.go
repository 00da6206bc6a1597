package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"bookshop/internal/book"
	"bookshop/internal/config"
	apphttp "bookshop/internal/http"
	"bookshop/internal/httpx"
	"bookshop/internal/mirror"
	"bookshop/internal/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "bookshop: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := loadCatalog(ctx, cfg, log)
	if err != nil {
		return err
	}
	log.Info("catalog loaded", zap.String("source", cfg.CatalogSource), zap.Int("books", catalog.Len()))

	rateLimiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer rateLimiter.Stop()

	ready := &readiness{}
	router := apphttp.NewRouter(apphttp.RouterDeps{
		Books:          book.NewHTTPHandler(book.NewService(book.NewMemoryRepo(catalog)), log),
		Mirror:         mirror.NewHTTPHandler(mirror.NewClient(cfg.MirrorBaseURL, nil), log),
		Logger:         log,
		Ready:          ready.Check,
		RateLimiter:    rateLimiter,
		AllowedOrigins: cfg.AllowedOrigins,
		EnableHSTS:     cfg.EnableHSTS,
	})

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	ready.serving.Store(true)
	go func() {
		log.Info("starting server", zap.String("addr", cfg.Addr), zap.String("mirror_base_url", cfg.MirrorBaseURL))
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	ready.serving.Store(false)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

var errNotServing = errors.New("not serving")

// readiness is ready from the moment the loaded catalog is being served
// until shutdown begins.
type readiness struct {
	serving atomic.Bool
}

func (r *readiness) Check(context.Context) error {
	if !r.serving.Load() {
		return errNotServing
	}
	return nil
}

// loadCatalog reads the catalog once from the configured source. The
// database pool is closed again as soon as the books are in memory.
func loadCatalog(ctx context.Context, cfg config.Config, log *zap.Logger) (*book.Catalog, error) {
	if cfg.CatalogSource != config.SourcePostgres {
		return book.LoadCatalog(ctx, book.DefaultSeed())
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("cannot create db pool: %w", err)
	}
	defer pool.Close()

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DBTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		return nil, fmt.Errorf("cannot ping database (%s): %w", redactDSN(cfg.DatabaseDSN), err)
	}
	log.Info("database connection OK")

	return book.LoadCatalog(ctx, book.NewPostgresSource(pool, cfg.DBTimeout))
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
