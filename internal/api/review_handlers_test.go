package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReview(t *testing.T) {
	srv := setupTestServer(t)
	userID, token := registerTestUser(t, srv, "lectora")
	bookID := createTestBook(t, srv, token, "Reseñable")

	rec := doJSON(t, srv, http.MethodPost, "/reviews/nueva", map[string]any{
		"puntuacion": 4,
		"id_usuario": userID,
		"id_libro":   bookID,
		"texto":      "Me gustó mucho.",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
	assert.NotZero(t, decodeBody(t, rec)["id"])
}

func TestCreateReviewRequiresAuth(t *testing.T) {
	srv := setupTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/reviews/nueva", map[string]any{
		"puntuacion": 3,
		"id_usuario": 1,
		"id_libro":   1,
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateReviewMissingFields(t *testing.T) {
	srv := setupTestServer(t)
	userID, token := registerTestUser(t, srv, "lectora")
	bookID := createTestBook(t, srv, token, "Reseñable")

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing puntuacion", map[string]any{"id_usuario": userID, "id_libro": bookID}},
		{"missing id_usuario", map[string]any{"puntuacion": 3, "id_libro": bookID}},
		{"missing id_libro", map[string]any{"puntuacion": 3, "id_usuario": userID}},
		{"zero puntuacion counts as missing", map[string]any{"puntuacion": 0, "id_usuario": userID, "id_libro": bookID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/reviews/nueva", tt.body, token)
			assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", rec.Body.String())
		})
	}
}

func TestCreateReviewRatingOutOfRange(t *testing.T) {
	srv := setupTestServer(t)
	userID, token := registerTestUser(t, srv, "lectora")
	bookID := createTestBook(t, srv, token, "Reseñable")

	for _, rating := range []int{-1, 6, 100} {
		rec := doJSON(t, srv, http.MethodPost, "/reviews/nueva", map[string]any{
			"puntuacion": rating,
			"id_usuario": userID,
			"id_libro":   bookID,
		}, token)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "rating %d, body: %s", rating, rec.Body.String())
	}
}

func TestCreateReviewMissingReferences(t *testing.T) {
	srv := setupTestServer(t)
	userID, token := registerTestUser(t, srv, "lectora")
	bookID := createTestBook(t, srv, token, "Reseñable")

	rec := doJSON(t, srv, http.MethodPost, "/reviews/nueva", map[string]any{
		"puntuacion": 3,
		"id_usuario": userID,
		"id_libro":   bookID + 100,
	}, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/reviews/nueva", map[string]any{
		"puntuacion": 3,
		"id_usuario": userID + 100,
		"id_libro":   bookID,
	}, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListReviewsForBook(t *testing.T) {
	srv := setupTestServer(t)
	userID, token := registerTestUser(t, srv, "lectora")
	bookID := createTestBook(t, srv, token, "Reseñable")

	for _, text := range []string{"primera", "segunda"} {
		rec := doJSON(t, srv, http.MethodPost, "/reviews/nueva", map[string]any{
			"puntuacion": 5,
			"id_usuario": userID,
			"id_libro":   bookID,
			"texto":      text,
		}, token)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, srv, http.MethodGet, "/reviews/"+itoa(bookID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var reviews []map[string]any
	require.NoError(t, decodeInto(rec, &reviews))
	require.Len(t, reviews, 2)

	// Each row carries the reviewer's identity.
	assert.Equal(t, "lectora", reviews[0]["nombre_usuario"])
	assert.Regexp(t, `^/img/pfp/profile-[1-8]\.png$`, reviews[0]["perfil"])
	assert.Equal(t, float64(5), reviews[0]["puntuacion"])
}

func TestListReviewsForUser(t *testing.T) {
	srv := setupTestServer(t)
	userID, token := registerTestUser(t, srv, "lectora")
	bookID := createTestBook(t, srv, token, "Reseñable")

	rec := doJSON(t, srv, http.MethodPost, "/reviews/nueva", map[string]any{
		"puntuacion": 2,
		"id_usuario": userID,
		"id_libro":   bookID,
		"texto":      "Regular.",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/reviews/usuario/"+itoa(userID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var reviews []map[string]any
	require.NoError(t, decodeInto(rec, &reviews))
	require.Len(t, reviews, 1)

	// Each row carries the reviewed book's metadata.
	assert.Equal(t, "Reseñable", reviews[0]["titulo"])
	assert.Equal(t, "Autora de Prueba", reviews[0]["autor"])
	assert.NotEmpty(t, reviews[0]["url_portada"])
}

func TestListReviewsEmptyArray(t *testing.T) {
	srv := setupTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/reviews/42", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = doJSON(t, srv, http.MethodGet, "/reviews/usuario/42", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
