package httpx

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/books", nil)

	JSONSuccess(w, r, map[string]string{"key": "value"}, map[string]interface{}{"total": 10})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var response SuccessResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.True(t, response.Success)
	assert.Equal(t, map[string]interface{}{"key": "value"}, response.Data)
	assert.Equal(t, map[string]interface{}{"total": float64(10)}, response.Meta)
}

func TestJSONSuccess_RequestIDInMeta(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	r = r.WithContext(ContextWithRequestID(r.Context(), "req-1"))

	JSONSuccessCreated(w, r, map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	var response SuccessResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, map[string]interface{}{"request_id": "req-1"}, response.Meta)
}

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	details := []ErrorDetail{{Field: "isbn", Message: "isbn is required"}}

	JSONError(w, httptest.NewRequest(http.MethodPost, "/api/books", nil), http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.False(t, response.Success)
	assert.Equal(t, "VALIDATION_ERROR", response.Error.Code)
	assert.Equal(t, details, response.Error.Details)
}

func TestJSONSuccessNoContent(t *testing.T) {
	w := httptest.NewRecorder()

	JSONSuccessNoContent(w)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		ISBN string `json:"isbn"`
	}
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"isbn":"001","extra":true}`))

	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "001", dst.ISBN)

	bad := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.Error(t, DecodeJSON(bad, &dst))
}

func TestReadJSON(t *testing.T) {
	var dst struct {
		Title string `json:"title"`
	}

	t.Run("valid body", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Aventuras"}`))

		assert.True(t, ReadJSON(w, r, &dst))
		assert.Equal(t, "Aventuras", dst.Title)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":`))

		assert.False(t, ReadJSON(w, r, &dst))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "BAD_REQUEST")
	})

	t.Run("chunked body over the limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		// A plain io.Reader leaves ContentLength unknown, as with chunked encoding.
		body := io.MultiReader(strings.NewReader(`{"title":"`+strings.Repeat("a", 64)+`"}`))
		r := httptest.NewRequest(http.MethodPost, "/", body)
		require.Equal(t, int64(-1), r.ContentLength)
		r.Body = http.MaxBytesReader(w, r.Body, 16)

		assert.False(t, ReadJSON(w, r, &dst))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "PAYLOAD_TOO_LARGE")
	})
}
