package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"bookshop/internal/apperr"
	"bookshop/internal/httpx"

	"go.uber.org/zap"
)

// Fetcher is the remote side the async routes relay from.
type Fetcher interface {
	FetchAll(ctx context.Context) (json.RawMessage, error)
	FetchByISBN(ctx context.Context, isbn string) (json.RawMessage, error)
	FetchByAuthor(ctx context.Context, author string) (json.RawMessage, error)
	FetchByTitle(ctx context.Context, title string) (json.RawMessage, error)
}

var (
	allMessages    = httpx.Messages{Failed: "Error fetching books"}
	isbnMessages   = httpx.Messages{NotFound: "Book not found", Failed: "Error fetching book"}
	authorMessages = httpx.Messages{NotFound: "No books found by this author", Failed: "Error fetching books"}
	titleMessages  = httpx.Messages{NotFound: "No books found with this title", Failed: "Error fetching books"}
)

type HTTPHandler struct {
	fetcher Fetcher
	logger  *zap.Logger
}

func NewHTTPHandler(fetcher Fetcher, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{fetcher: fetcher, logger: logger}
}

// Books handles GET /async/books
func (h *HTTPHandler) Books(w http.ResponseWriter, r *http.Request) {
	payload, err := h.fetcher.FetchAll(detach(r))
	// The catalog root always exists, so a 404 means the mirror is misrouted.
	if errors.Is(err, apperr.ErrNotFound) {
		err = &apperr.RemoteError{
			Op:  opFetchAll,
			Err: fmt.Errorf("unexpected status code: %d", http.StatusNotFound),
		}
	}
	h.relay(w, r, payload, err, allMessages)
}

// GetByISBN handles GET /async/isbn/{isbn}
func (h *HTTPHandler) GetByISBN(w http.ResponseWriter, r *http.Request) {
	payload, err := h.fetcher.FetchByISBN(detach(r), r.PathValue("isbn"))
	h.relay(w, r, payload, err, isbnMessages)
}

// GetByAuthor handles GET /async/author/{author}
func (h *HTTPHandler) GetByAuthor(w http.ResponseWriter, r *http.Request) {
	payload, err := h.fetcher.FetchByAuthor(detach(r), r.PathValue("author"))
	h.relay(w, r, payload, err, authorMessages)
}

// GetByTitle handles GET /async/title/{title}
func (h *HTTPHandler) GetByTitle(w http.ResponseWriter, r *http.Request) {
	payload, err := h.fetcher.FetchByTitle(detach(r), r.PathValue("title"))
	h.relay(w, r, payload, err, titleMessages)
}

// detach keeps the outbound call running if the inbound client goes away;
// the result is then written to a closed connection and dropped.
func detach(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func (h *HTTPHandler) relay(w http.ResponseWriter, r *http.Request, payload json.RawMessage, err error, msgs httpx.Messages) {
	if err == nil {
		err = httpx.RawJSON(w, http.StatusOK, payload)
		if err == nil {
			return
		}
		err = &apperr.RemoteError{Op: "relay", Err: err}
	}

	if apperr.StatusCode(err) != http.StatusNotFound {
		h.logger.Warn("mirror request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", httpx.RequestIDFrom(r)),
			zap.Error(err),
		)
	}
	httpx.Failure(w, err, msgs)
}
