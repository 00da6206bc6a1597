package book

import (
	"context"
)

// MemoryRepo serves lookups from a loaded catalog.
type MemoryRepo struct {
	catalog *Catalog
}

func NewMemoryRepo(catalog *Catalog) *MemoryRepo {
	return &MemoryRepo{catalog: catalog}
}

func (r *MemoryRepo) All(ctx context.Context) (*Catalog, error) {
	return r.catalog, nil
}

func (r *MemoryRepo) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	b, ok := r.catalog.Get(isbn)
	if !ok {
		return Book{}, ErrNotFound
	}
	return b, nil
}

// FindByAuthor matches on exact, case-sensitive equality.
func (r *MemoryRepo) FindByAuthor(ctx context.Context, author string) ([]Book, error) {
	return r.catalog.Filter(func(b Book) bool { return b.Author == author }), nil
}

// FindByTitle matches on exact, case-sensitive equality.
func (r *MemoryRepo) FindByTitle(ctx context.Context, title string) ([]Book, error) {
	return r.catalog.Filter(func(b Book) bool { return b.Title == title }), nil
}
