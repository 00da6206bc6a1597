package book

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Querier is the part of *pgxpool.Pool the source needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource loads the catalog from the books and book_reviews tables.
type PostgresSource struct {
	db      Querier
	timeout time.Duration
}

func NewPostgresSource(db Querier, timeout time.Duration) *PostgresSource {
	return &PostgresSource{db: db, timeout: timeout}
}

func (s *PostgresSource) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

const loadBooksSQL = `
	SELECT b.isbn, b.author, b.title, r.reviewer, r.body
	FROM books b
	LEFT JOIN book_reviews r ON r.isbn = b.isbn
	ORDER BY b.position, b.isbn, r.reviewer`

func (s *PostgresSource) Load(ctx context.Context) ([]Book, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.Query(ctx, loadBooksSQL)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		var (
			isbn, author, title string
			reviewer, body      *string
		)
		if err := rows.Scan(&isbn, &author, &title, &reviewer, &body); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}

		if n := len(books); n == 0 || books[n-1].ISBN != isbn {
			books = append(books, Book{
				ISBN:    isbn,
				Author:  author,
				Title:   title,
				Reviews: map[string]string{},
			})
		}
		if reviewer != nil && body != nil {
			books[len(books)-1].Reviews[*reviewer] = *body
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return books, nil
}
