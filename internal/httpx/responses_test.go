package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookshop/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON_Indented(t *testing.T) {
	w := httptest.NewRecorder()

	JSON(w, http.StatusOK, map[string]string{"title": "Things Fall Apart"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "{\n    \"title\": \"Things Fall Apart\"\n}\n", w.Body.String())
}

func TestRawJSON(t *testing.T) {
	t.Run("keeps key order", func(t *testing.T) {
		w := httptest.NewRecorder()

		err := RawJSON(w, http.StatusOK, []byte(`{"b":1,"a":{"c":[]}}`))

		require.NoError(t, err)
		assert.Equal(t, "{\n    \"b\": 1,\n    \"a\": {\n        \"c\": []\n    }\n}\n", w.Body.String())
	})

	t.Run("invalid payload", func(t *testing.T) {
		w := httptest.NewRecorder()

		err := RawJSON(w, http.StatusOK, []byte(`<html>`))

		assert.Error(t, err)
		assert.Empty(t, w.Body.String())
	})
}

func TestMessage(t *testing.T) {
	w := httptest.NewRecorder()

	Message(w, http.StatusNotFound, "Book not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Book not found"}`, w.Body.String())
}

func TestFailure(t *testing.T) {
	t.Run("not found omits error text", func(t *testing.T) {
		w := httptest.NewRecorder()

		Failure(w, fmt.Errorf("isbn 99: %w", apperr.ErrNotFound), Messages{NotFound: "Book not found", Failed: "Error fetching book"})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message":"Book not found"}`, w.Body.String())
	})

	t.Run("remote failure carries error text", func(t *testing.T) {
		w := httptest.NewRecorder()

		Failure(w, &apperr.RemoteError{Op: "fetch all", Err: errors.New("connection refused")}, Messages{NotFound: "Book not found", Failed: "Error fetching books"})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var body MessageResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "Error fetching books", body.Message)
		assert.Equal(t, "connection refused", body.Error)
	})
}

func TestRawJSON_MatchesJSON(t *testing.T) {
	v := map[string]any{"1": map[string]any{"author": "Unknown", "reviews": map[string]string{}}}

	direct := httptest.NewRecorder()
	JSON(direct, http.StatusOK, v)

	relayed := httptest.NewRecorder()
	require.NoError(t, RawJSON(relayed, http.StatusOK, direct.Body.Bytes()))

	assert.Equal(t, direct.Body.String(), relayed.Body.String())
}
