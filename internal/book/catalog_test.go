package book

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBooks() []Book {
	return []Book{
		{ISBN: "1", Author: "Chinua Achebe", Title: "Things Fall Apart", Reviews: map[string]string{}},
		{ISBN: "4", Author: "Unknown", Title: "The Epic Of Gilgamesh"},
		{ISBN: "5", Author: "Unknown", Title: "The Book Of Job", Reviews: map[string]string{"alice": "Timeless."}},
		{ISBN: "8", Author: "Jane Austen", Title: "Pride and Prejudice"},
	}
}

func mustCatalog(t *testing.T, books []Book) *Catalog {
	t.Helper()
	c, err := NewCatalog(books)
	require.NoError(t, err)
	return c
}

func TestNewCatalog(t *testing.T) {
	t.Run("keeps insertion order", func(t *testing.T) {
		c := mustCatalog(t, testBooks())

		var isbns []string
		for _, b := range c.Books() {
			isbns = append(isbns, b.ISBN)
		}
		assert.Equal(t, []string{"1", "4", "5", "8"}, isbns)
		assert.Equal(t, 4, c.Len())
	})

	t.Run("missing isbn", func(t *testing.T) {
		_, err := NewCatalog([]Book{{Title: "No key"}})
		assert.Error(t, err)
	})

	t.Run("duplicate isbn", func(t *testing.T) {
		_, err := NewCatalog([]Book{{ISBN: "1"}, {ISBN: "1"}})
		assert.ErrorContains(t, err, `duplicate isbn "1"`)
	})

	t.Run("nil reviews become empty", func(t *testing.T) {
		c := mustCatalog(t, testBooks())

		b, ok := c.Get("4")
		require.True(t, ok)
		assert.NotNil(t, b.Reviews)
		assert.Empty(t, b.Reviews)
	})
}

func TestCatalog_GetReturnsCopy(t *testing.T) {
	c := mustCatalog(t, testBooks())

	b, ok := c.Get("5")
	require.True(t, ok)
	b.Reviews["mallory"] = "vandalised"

	again, _ := c.Get("5")
	assert.Equal(t, map[string]string{"alice": "Timeless."}, again.Reviews)
}

func TestCatalog_Filter(t *testing.T) {
	c := mustCatalog(t, testBooks())

	got := c.Filter(func(b Book) bool { return b.Author == "Unknown" })
	require.Len(t, got, 2)
	assert.Equal(t, "4", got[0].ISBN)
	assert.Equal(t, "5", got[1].ISBN)

	none := c.Filter(func(b Book) bool { return false })
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCatalog_MarshalJSON(t *testing.T) {
	c := mustCatalog(t, []Book{
		{ISBN: "10", Author: "Samuel Beckett", Title: "Molloy"},
		{ISBN: "2", Author: "Hans Christian Andersen", Title: "Fairy tales"},
	})

	data, err := json.Marshal(c)
	require.NoError(t, err)

	assert.Equal(t,
		`{"10":{"author":"Samuel Beckett","title":"Molloy","reviews":{}},"2":{"author":"Hans Christian Andersen","title":"Fairy tales","reviews":{}}}`,
		string(data))
}

func TestCatalog_JSONRoundTrip(t *testing.T) {
	original := mustCatalog(t, testBooks())

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Catalog
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, original.Books(), decoded.Books())
}

func TestCatalog_UnmarshalJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "array", data: `[]`},
		{name: "bad book", data: `{"1": "not a book"}`},
		{name: "duplicate key", data: `{"1": {}, "1": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Catalog
			assert.Error(t, json.Unmarshal([]byte(tt.data), &c))
		})
	}
}
