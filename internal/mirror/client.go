// Package mirror re-fetches catalog data from the service's own endpoints
// over HTTP and relays it.
package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"bookshop/internal/apperr"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var outboundCalls = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bookshop_mirror_requests_total",
		Help: "Outbound mirror requests by operation and outcome",
	},
	[]string{"op", "outcome"},
)

const (
	opFetchAll      = "fetch all"
	opFetchByISBN   = "fetch by isbn"
	opFetchByAuthor = "fetch by author"
	opFetchByTitle  = "fetch by title"
)

// Client issues one GET per call against baseURL. It never retries and
// never caches.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient returns a client for baseURL. A nil httpClient means
// http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// FetchAll mirrors GET /.
func (c *Client) FetchAll(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, opFetchAll, "/")
}

// FetchByISBN mirrors GET /isbn/{isbn}. The ISBN is used as given.
func (c *Client) FetchByISBN(ctx context.Context, isbn string) (json.RawMessage, error) {
	return c.get(ctx, opFetchByISBN, "/isbn/"+isbn)
}

// FetchByAuthor mirrors GET /author/{author}.
func (c *Client) FetchByAuthor(ctx context.Context, author string) (json.RawMessage, error) {
	return c.get(ctx, opFetchByAuthor, "/author/"+url.PathEscape(author))
}

// FetchByTitle mirrors GET /title/{title}.
func (c *Client) FetchByTitle(ctx context.Context, title string) (json.RawMessage, error) {
	return c.get(ctx, opFetchByTitle, "/title/"+url.PathEscape(title))
}

func (c *Client) get(ctx context.Context, op, path string) (json.RawMessage, error) {
	payload, err := c.do(ctx, path)
	switch {
	case err == nil:
		outboundCalls.WithLabelValues(op, "ok").Inc()
		return payload, nil
	case errors.Is(err, apperr.ErrNotFound):
		outboundCalls.WithLabelValues(op, "not_found").Inc()
		return nil, err
	default:
		outboundCalls.WithLabelValues(op, "error").Inc()
		return nil, &apperr.RemoteError{Op: op, Err: err}
	}
}

func (c *Client) do(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperr.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("invalid JSON payload from %s", path)
	}
	return json.RawMessage(body), nil
}
