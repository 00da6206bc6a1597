package book

import (
	"context"
	"fmt"
)

// Service provides book-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListAll returns the whole catalog.
func (s *Service) ListAll(ctx context.Context) (*Catalog, error) {
	return s.repo.All(ctx)
}

// GetByISBN returns a book by its ISBN.
func (s *Service) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	return s.repo.GetByISBN(ctx, isbn)
}

// GetByAuthor returns the books written by author. An author with no books
// is reported as ErrNotFound.
func (s *Service) GetByAuthor(ctx context.Context, author string) ([]Book, error) {
	books, err := s.repo.FindByAuthor(ctx, author)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, fmt.Errorf("author %q: %w", author, ErrNotFound)
	}
	return books, nil
}

// GetByTitle returns the books with the given title. A title with no books
// is reported as ErrNotFound.
func (s *Service) GetByTitle(ctx context.Context, title string) ([]Book, error) {
	books, err := s.repo.FindByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, fmt.Errorf("title %q: %w", title, ErrNotFound)
	}
	return books, nil
}

// GetReviews returns the reviews of the book at isbn. A book without reviews
// yields an empty mapping.
func (s *Service) GetReviews(ctx context.Context, isbn string) (map[string]string, error) {
	b, err := s.repo.GetByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	if b.Reviews == nil {
		return map[string]string{}, nil
	}
	return b.Reviews, nil
}
