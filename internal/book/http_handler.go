package book

import (
	"net/http"

	"bookshop/internal/apperr"
	"bookshop/internal/httpx"

	"go.uber.org/zap"
)

const msgLookupFailed = "Internal server error"

var (
	isbnMessages   = httpx.Messages{NotFound: "Book not found", Failed: msgLookupFailed}
	authorMessages = httpx.Messages{NotFound: "No books found by this author", Failed: msgLookupFailed}
	titleMessages  = httpx.Messages{NotFound: "No books found with this title", Failed: msgLookupFailed}
)

type HTTPHandler struct {
	service *Service
	logger  *zap.Logger
}

func NewHTTPHandler(service *Service, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, logger: logger}
}

// List handles GET /
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.service.ListAll(r.Context())
	if err != nil {
		h.fail(w, r, err, isbnMessages)
		return
	}
	httpx.JSON(w, http.StatusOK, catalog)
}

// GetByISBN handles GET /isbn/{isbn}
func (h *HTTPHandler) GetByISBN(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.GetByISBN(r.Context(), r.PathValue("isbn"))
	if err != nil {
		h.fail(w, r, err, isbnMessages)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// GetByAuthor handles GET /author/{author}
func (h *HTTPHandler) GetByAuthor(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.GetByAuthor(r.Context(), r.PathValue("author"))
	if err != nil {
		h.fail(w, r, err, authorMessages)
		return
	}
	httpx.JSON(w, http.StatusOK, books)
}

// GetByTitle handles GET /title/{title}
func (h *HTTPHandler) GetByTitle(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.GetByTitle(r.Context(), r.PathValue("title"))
	if err != nil {
		h.fail(w, r, err, titleMessages)
		return
	}
	httpx.JSON(w, http.StatusOK, books)
}

// GetReviews handles GET /review/{isbn}
func (h *HTTPHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.GetReviews(r.Context(), r.PathValue("isbn"))
	if err != nil {
		h.fail(w, r, err, isbnMessages)
		return
	}
	httpx.JSON(w, http.StatusOK, reviews)
}

// fail logs anything other than a lookup miss before writing the error.
func (h *HTTPHandler) fail(w http.ResponseWriter, r *http.Request, err error, msgs httpx.Messages) {
	if apperr.StatusCode(err) != http.StatusNotFound {
		h.logger.Error("catalog lookup failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", httpx.RequestIDFrom(r)),
			zap.Error(err),
		)
	}
	httpx.Failure(w, err, msgs)
}
