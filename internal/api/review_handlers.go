package api

import (
	"net/http"

	"github.com/resenaapp/resena-server/internal/http/response"
	"github.com/resenaapp/resena-server/internal/service"
)

// handleListReviewsForBook returns a book's reviews, newest first, each
// with the reviewer's name and profile image.
// GET /reviews/{id_libro}
func (s *Server) handleListReviewsForBook(w http.ResponseWriter, r *http.Request) {
	bookID, ok := s.pathID(w, r, "id_libro")
	if !ok {
		return
	}

	reviews, err := s.reviews.ListReviewsForBook(r.Context(), bookID)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, reviews, s.logger.Logger)
}

// handleListReviewsForUser returns a user's reviews, newest first, each
// with the reviewed book's title, author, and cover.
// GET /reviews/usuario/{id_usuario}
func (s *Server) handleListReviewsForUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathID(w, r, "id_usuario")
	if !ok {
		return
	}

	reviews, err := s.reviews.ListReviewsForUser(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, reviews, s.logger.Logger)
}

// handleCreateReview inserts a review for an existing user and book.
// POST /reviews/nueva
func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var req service.CreateReviewRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	review, err := s.reviews.CreateReview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Created(w, createdResponse{ID: review.ID}, s.logger.Logger)
}
