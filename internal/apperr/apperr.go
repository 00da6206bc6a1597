// Package apperr holds the error kinds shared by the catalog and mirror
// handlers, and the one place where they are turned into HTTP statuses.
package apperr

import (
	"errors"
	"net/http"
)

// ErrNotFound is returned when a lookup misses or a filter matches nothing.
var ErrNotFound = errors.New("not found")

// RemoteError reports an outbound call that failed for any reason other
// than a 404 from the remote side.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	if e.Err == nil {
		return e.Op + ": remote failure"
	}
	return e.Err.Error()
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// StatusCode maps an error kind to the HTTP status surfaced to clients.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
