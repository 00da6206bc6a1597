package book

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
)

// Catalog is the fixed, insertion-ordered collection of books keyed by ISBN.
// It is never modified after construction.
type Catalog struct {
	order []string
	books map[string]Book
}

// NewCatalog builds a catalog from books in the given order. Every book must
// carry a non-empty ISBN and no ISBN may appear twice.
func NewCatalog(books []Book) (*Catalog, error) {
	c := &Catalog{
		order: make([]string, 0, len(books)),
		books: make(map[string]Book, len(books)),
	}
	for i, b := range books {
		if b.ISBN == "" {
			return nil, fmt.Errorf("book at position %d has no isbn", i)
		}
		if _, dup := c.books[b.ISBN]; dup {
			return nil, fmt.Errorf("duplicate isbn %q", b.ISBN)
		}
		c.order = append(c.order, b.ISBN)
		c.books[b.ISBN] = b.clone()
	}
	return c, nil
}

// Len returns the number of books in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Get returns the book stored under isbn.
func (c *Catalog) Get(isbn string) (Book, bool) {
	if c == nil {
		return Book{}, false
	}
	b, ok := c.books[isbn]
	if !ok {
		return Book{}, false
	}
	return b.clone(), true
}

// Books returns every book in catalog order.
func (c *Catalog) Books() []Book {
	return c.Filter(func(Book) bool { return true })
}

// Filter returns the books for which match reports true, in catalog order.
// The result is empty, never nil, when nothing matches.
func (c *Catalog) Filter(match func(Book) bool) []Book {
	out := []Book{}
	if c == nil {
		return out
	}
	for _, isbn := range c.order {
		if b := c.books[isbn]; match(b) {
			out = append(out, b.clone())
		}
	}
	return out
}

// MarshalJSON encodes the catalog as an object keyed by ISBN, keeping
// insertion order.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, isbn := range c.orderOrNil() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(isbn)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.books[isbn])
		if err != nil {
			return nil, fmt.Errorf("encode book %s: %w", isbn, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object keyed by ISBN, restoring each book's ISBN
// from its key.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	books, err := decodeOrdered(bytes.NewReader(data))
	if err != nil {
		return err
	}
	decoded, err := NewCatalog(books)
	if err != nil {
		return err
	}
	*c = *decoded
	return nil
}

func (c *Catalog) orderOrNil() []string {
	if c == nil {
		return nil
	}
	return c.order
}

func (b Book) clone() Book {
	b.Reviews = maps.Clone(b.Reviews)
	if b.Reviews == nil {
		b.Reviews = map[string]string{}
	}
	return b
}

// decodeOrdered reads a JSON object of ISBN -> book, preserving key order.
func decodeOrdered(r io.Reader) ([]Book, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("read catalog: expected a JSON object")
	}

	var books []Book
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read catalog key: %w", err)
		}
		isbn, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("read catalog: unexpected key %v", tok)
		}

		var b Book
		if err := dec.Decode(&b); err != nil {
			return nil, fmt.Errorf("read book %s: %w", isbn, err)
		}
		b.ISBN = isbn
		books = append(books, b)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return books, nil
}
