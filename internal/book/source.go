package book

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"sync"
)

//go:embed seed/books.json
var defaultSeed []byte

// SeedSource reads books from a JSON object keyed by ISBN. The reader is
// drained on the first Load and its bytes kept, so Load can be repeated.
type SeedSource struct {
	mu   sync.Mutex
	r    io.Reader
	data []byte
}

func NewSeedSource(r io.Reader) *SeedSource {
	return &SeedSource{r: r}
}

// DefaultSeed returns a source over the catalog shipped with the service.
func DefaultSeed() *SeedSource {
	return &SeedSource{data: defaultSeed}
}

func (s *SeedSource) Load(ctx context.Context) ([]Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := s.contents()
	if err != nil {
		return nil, err
	}
	return decodeOrdered(bytes.NewReader(data))
}

func (s *SeedSource) contents() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.r != nil {
		data, err := io.ReadAll(s.r)
		if err != nil {
			return nil, fmt.Errorf("read seed: %w", err)
		}
		s.data, s.r = data, nil
	}
	return s.data, nil
}

// LoadCatalog builds a catalog from everything src provides.
func LoadCatalog(ctx context.Context, src Source) (*Catalog, error) {
	books, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load books: %w", err)
	}
	return NewCatalog(books)
}
