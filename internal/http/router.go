package http

import (
	"context"
	"net/http"

	"bookshop/internal/book"
	"bookshop/internal/httpx"
	"bookshop/internal/mirror"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RouterDeps carries the handlers and middleware settings the router wires.
type RouterDeps struct {
	Books          *book.HTTPHandler
	Mirror         *mirror.HTTPHandler
	Ready          func(ctx context.Context) error
	Logger         *zap.Logger
	RateLimiter    *httpx.RateLimitMiddleware
	AllowedOrigins []string
	EnableHSTS     bool
}

// NewRouter registers every public route. Catalog and mirror routes answer
// GET only.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()
	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, httpx.Instrument(pattern, h))
	}

	handle("GET /{$}", d.Books.List)
	handle("GET /isbn/{isbn}", d.Books.GetByISBN)
	handle("GET /author/{author}", d.Books.GetByAuthor)
	handle("GET /title/{title}", d.Books.GetByTitle)
	handle("GET /review/{isbn}", d.Books.GetReviews)

	handle("GET /async/books", d.Mirror.Books)
	handle("GET /async/isbn/{isbn}", d.Mirror.GetByISBN)
	handle("GET /async/author/{author}", d.Mirror.GetByAuthor)
	handle("GET /async/title/{title}", d.Mirror.GetByTitle)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if d.Ready != nil {
			if err := d.Ready(r.Context()); err != nil {
				http.Error(w, "not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	mws := []func(http.Handler) http.Handler{
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(d.Logger),
		httpx.RecoveryMiddleware(d.Logger),
		httpx.SecurityHeadersMiddleware(d.EnableHSTS),
		httpx.CORSMiddleware(d.AllowedOrigins),
	}
	if d.RateLimiter != nil {
		mws = append(mws, d.RateLimiter.Middleware)
	}
	return httpx.Chain(mux, mws...)
}
