package book

import (
	"bookshop/internal/apperr"
)

// ErrNotFound is returned when no book matches a lookup.
var ErrNotFound = apperr.ErrNotFound

// Book represents a book entity. The ISBN is the catalog key and is not
// repeated in the JSON form.
type Book struct {
	ISBN    string            `json:"-"`
	Author  string            `json:"author"`
	Title   string            `json:"title"`
	Reviews map[string]string `json:"reviews"`
}

