package book

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSeed(t *testing.T) {
	src := DefaultSeed()
	catalog, err := LoadCatalog(context.Background(), src)
	require.NoError(t, err)

	again, err := LoadCatalog(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, catalog.Books(), again.Books())

	assert.Equal(t, 10, catalog.Len())

	first, ok := catalog.Get("1")
	require.True(t, ok)
	assert.Equal(t, Book{ISBN: "1", Author: "Chinua Achebe", Title: "Things Fall Apart", Reviews: map[string]string{}}, first)

	unknown := catalog.Filter(func(b Book) bool { return b.Author == "Unknown" })
	assert.Len(t, unknown, 4)

	books := catalog.Books()
	assert.Equal(t, "10", books[len(books)-1].ISBN)
}

func TestSeedSource(t *testing.T) {
	t.Run("keeps document order", func(t *testing.T) {
		src := NewSeedSource(strings.NewReader(`{"b": {"author": "A", "title": "T"}, "a": {"author": "B", "title": "U", "reviews": {"r": "ok"}}}`))

		books, err := src.Load(context.Background())
		require.NoError(t, err)
		require.Len(t, books, 2)
		assert.Equal(t, "b", books[0].ISBN)
		assert.Equal(t, "a", books[1].ISBN)
		assert.Equal(t, map[string]string{"r": "ok"}, books[1].Reviews)
	})

	t.Run("repeatable", func(t *testing.T) {
		src := NewSeedSource(strings.NewReader(`{"1": {"author": "A", "title": "T", "reviews": {"r": "ok"}}}`))

		first, err := src.Load(context.Background())
		require.NoError(t, err)
		first[0].Reviews["r"] = "changed"

		second, err := src.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []Book{{ISBN: "1", Author: "A", Title: "T", Reviews: map[string]string{"r": "ok"}}}, second)
	})

	t.Run("read error", func(t *testing.T) {
		readErr := errors.New("disk gone")
		_, err := NewSeedSource(iotest.ErrReader(readErr)).Load(context.Background())
		assert.ErrorIs(t, err, readErr)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := NewSeedSource(strings.NewReader(`{"1": `)).Load(context.Background())
		assert.Error(t, err)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := DefaultSeed().Load(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

type failingSource struct{ err error }

func (s failingSource) Load(context.Context) ([]Book, error) { return nil, s.err }

func TestLoadCatalog_SourceError(t *testing.T) {
	cause := errors.New("unreachable")

	_, err := LoadCatalog(context.Background(), failingSource{err: cause})
	assert.ErrorIs(t, err, cause)
}

// fakeRows serves fixed rows of (isbn, author, title, reviewer, body).
type fakeRows struct {
	rows [][]*string
	pos  int
	err  error
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	r.pos++
	return r.pos <= len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.pos-1]
	if len(dest) != len(row) {
		return fmt.Errorf("expected %d destinations, got %d", len(row), len(dest))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = *row[i]
		case **string:
			*p = row[i]
		default:
			return fmt.Errorf("unsupported destination %T", d)
		}
	}
	return nil
}

type fakeQuerier struct {
	rows     pgx.Rows
	err      error
	deadline bool
}

func (q *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	_, q.deadline = ctx.Deadline()
	return q.rows, q.err
}

func str(s string) *string { return &s }

func TestPostgresSource_Load(t *testing.T) {
	t.Run("groups reviews per book", func(t *testing.T) {
		q := &fakeQuerier{rows: &fakeRows{rows: [][]*string{
			{str("1"), str("Chinua Achebe"), str("Things Fall Apart"), nil, nil},
			{str("5"), str("Unknown"), str("The Book Of Job"), str("alice"), str("Timeless.")},
			{str("5"), str("Unknown"), str("The Book Of Job"), str("bob"), str("Long.")},
		}}}

		books, err := NewPostgresSource(q, time.Second).Load(context.Background())
		require.NoError(t, err)

		assert.True(t, q.deadline)
		assert.Equal(t, []Book{
			{ISBN: "1", Author: "Chinua Achebe", Title: "Things Fall Apart", Reviews: map[string]string{}},
			{ISBN: "5", Author: "Unknown", Title: "The Book Of Job", Reviews: map[string]string{"alice": "Timeless.", "bob": "Long."}},
		}, books)
	})

	t.Run("query error", func(t *testing.T) {
		q := &fakeQuerier{err: errors.New("connection refused")}

		_, err := NewPostgresSource(q, time.Second).Load(context.Background())
		assert.ErrorContains(t, err, "query books")
	})

	t.Run("iteration error", func(t *testing.T) {
		q := &fakeQuerier{rows: &fakeRows{err: errors.New("conn reset")}}

		_, err := NewPostgresSource(q, time.Second).Load(context.Background())
		assert.ErrorContains(t, err, "iterate books")
	})
}
