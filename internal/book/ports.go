package book

import (
	"context"
)

//go:generate mockgen -destination=mock_repository.go -package=book . Repository

// Repository defines the contract for book data storage.
type Repository interface {
	All(ctx context.Context) (*Catalog, error)
	GetByISBN(ctx context.Context, isbn string) (Book, error)
	FindByAuthor(ctx context.Context, author string) ([]Book, error)
	FindByTitle(ctx context.Context, title string) ([]Book, error)
}

// Source provides the books a catalog is built from.
type Source interface {
	Load(ctx context.Context) ([]Book, error)
}
