package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postBookForm sends a multipart request to /libro/nuevo.
func postBookForm(t *testing.T, srv *Server, token string, fields map[string]string, cover []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := bookForm(t, fields, cover)

	req := httptest.NewRequest(http.MethodPost, "/libro/nuevo", body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func validBookFields() map[string]string {
	return map[string]string{
		"titulo":            "La sombra del viento",
		"autor":             "Carlos Ruiz Zafón",
		"genero":            "Misterio",
		"fecha_publicacion": "2001-04-17",
		"paginas":           "576",
		"sinopsis":          "Un libro dentro de un libro.",
	}
}

func TestCreateBook(t *testing.T) {
	srv := setupTestServer(t)
	_, token := registerTestUser(t, srv, "editora")

	rec := postBookForm(t, srv, token, validBookFields(), testJPEG(t))
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	body := decodeBody(t, rec)
	require.NotZero(t, body["id"])
	bookID := int64(body["id"].(float64))

	// The stored book carries a served cover URL and a BlurHash.
	rec = doJSON(t, srv, http.MethodGet, "/libro/"+itoa(bookID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	book := decodeBody(t, rec)
	assert.Equal(t, "La sombra del viento", book["titulo"])
	coverURL, _ := book["url_portada"].(string)
	assert.True(t, strings.HasPrefix(coverURL, "/portadas/"), "url_portada: %q", coverURL)
	assert.NotEmpty(t, book["portada_blurhash"])
	assert.Equal(t, float64(576), book["paginas"])

	// And the cover is actually retrievable.
	rec = doJSON(t, srv, http.MethodGet, coverURL, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestCreateBookRequiresAuth(t *testing.T) {
	srv := setupTestServer(t)

	// No token at all.
	rec := postBookForm(t, srv, "", validBookFields(), testJPEG(t))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Present but invalid token.
	rec = postBookForm(t, srv, "v4.local.garbage", validBookFields(), testJPEG(t))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Malformed header scheme.
	body, contentType := bookForm(t, validBookFields(), testJPEG(t))
	req := httptest.NewRequest(http.MethodPost, "/libro/nuevo", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Basic abc123")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateBookMissingFields(t *testing.T) {
	srv := setupTestServer(t)
	_, token := registerTestUser(t, srv, "editora")

	for _, field := range []string{"titulo", "autor", "genero", "fecha_publicacion", "paginas", "sinopsis"} {
		t.Run("missing "+field, func(t *testing.T) {
			fields := validBookFields()
			fields[field] = ""
			rec := postBookForm(t, srv, token, fields, testJPEG(t))
			assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", rec.Body.String())
		})
	}

	t.Run("missing portada", func(t *testing.T) {
		rec := postBookForm(t, srv, token, validBookFields(), nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateBookRejectsBadFormats(t *testing.T) {
	srv := setupTestServer(t)
	_, token := registerTestUser(t, srv, "editora")

	tests := []struct {
		name  string
		field string
		value string
	}{
		{"paginas not a number", "paginas", "muchas"},
		{"paginas negative", "paginas", "-5"},
		{"paginas zero", "paginas", "0"},
		{"fecha wrong format", "fecha_publicacion", "17/04/2001"},
		{"fecha partial", "fecha_publicacion", "2001-04"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validBookFields()
			fields[tt.field] = tt.value
			rec := postBookForm(t, srv, token, fields, testJPEG(t))
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "body: %s", rec.Body.String())
		})
	}
}

func TestListBooksNewestFirst(t *testing.T) {
	srv := setupTestServer(t)
	_, token := registerTestUser(t, srv, "editora")

	first := createTestBook(t, srv, token, "Primero")
	second := createTestBook(t, srv, token, "Segundo")

	rec := doJSON(t, srv, http.MethodGet, "/libros", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var books []map[string]any
	require.NoError(t, decodeInto(rec, &books))
	require.Len(t, books, 2)
	assert.Equal(t, float64(second), books[0]["id"])
	assert.Equal(t, float64(first), books[1]["id"])
}

func TestListBooksEmpty(t *testing.T) {
	srv := setupTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/libros", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestGetBookNotFound(t *testing.T) {
	srv := setupTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/libro/999", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Recurso no encontrado", decodeBody(t, rec)["error"])

	// Non-numeric ids can't name a book.
	rec = doJSON(t, srv, http.MethodGet, "/libro/abc", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchBooks(t *testing.T) {
	srv := setupTestServer(t)
	_, token := registerTestUser(t, srv, "editora")

	createTestBook(t, srv, token, "El camino de los reyes")
	createTestBook(t, srv, token, "Juego de tronos")

	rec := doJSON(t, srv, http.MethodGet, "/busqueda?texto=tronos", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var books []map[string]any
	require.NoError(t, decodeInto(rec, &books))
	require.Len(t, books, 1)
	assert.Equal(t, "Juego de tronos", books[0]["titulo"])

	// Empty text matches everything.
	rec = doJSON(t, srv, http.MethodGet, "/busqueda", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, decodeInto(rec, &books))
	assert.Len(t, books, 2)
}

func TestGetCoverNotFound(t *testing.T) {
	srv := setupTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/portadas/no-such-cover.jpg", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
