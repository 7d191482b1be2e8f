package service

import (
	"context"

	"github.com/resenaapp/resena-server/internal/domain"
	"github.com/resenaapp/resena-server/internal/errors"
	"github.com/resenaapp/resena-server/internal/logger"
	"github.com/resenaapp/resena-server/internal/store"
)

// ReviewService handles review creation and listing.
type ReviewService struct {
	store  store.Store
	logger *logger.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(s store.Store, log *logger.Logger) *ReviewService {
	return &ReviewService{
		store:  s,
		logger: log,
	}
}

// CreateReviewRequest carries a new review. Text is optional; a rating
// of zero counts as missing, matching the front-end's contract.
type CreateReviewRequest struct {
	Rating int    `json:"puntuacion" validate:"required"`
	UserID int64  `json:"id_usuario" validate:"required"`
	BookID int64  `json:"id_libro" validate:"required"`
	Text   string `json:"texto"`
}

// CreateReview validates and inserts a review.
// The referenced user and book must exist.
func (s *ReviewService) CreateReview(ctx context.Context, req CreateReviewRequest) (*domain.Review, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}
	if !domain.ValidRating(req.Rating) {
		return nil, errors.Formatf("field puntuacion must be between %d and %d", domain.MinRating, domain.MaxRating)
	}

	review := &domain.Review{
		Rating: req.Rating,
		UserID: req.UserID,
		BookID: req.BookID,
		Text:   req.Text,
	}

	if err := s.store.CreateReview(ctx, review); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFound("usuario or libro not found")
		}
		return nil, errors.Internal("failed to create review").WithCause(err)
	}

	s.logger.Info("review created", "review_id", review.ID, "book_id", review.BookID, "user_id", review.UserID)

	return review, nil
}

// ListReviewsForBook returns a book's reviews, newest first, with the
// reviewer's name and profile image.
func (s *ReviewService) ListReviewsForBook(ctx context.Context, bookID int64) ([]*domain.BookReview, error) {
	reviews, err := s.store.ListReviewsForBook(ctx, bookID)
	if err != nil {
		return nil, errors.Internal("failed to list reviews").WithCause(err)
	}
	return reviews, nil
}

// ListReviewsForUser returns a user's reviews, newest first, with the
// reviewed book's title, author, and cover.
func (s *ReviewService) ListReviewsForUser(ctx context.Context, userID int64) ([]*domain.UserReview, error) {
	reviews, err := s.store.ListReviewsForUser(ctx, userID)
	if err != nil {
		return nil, errors.Internal("failed to list reviews").WithCause(err)
	}
	return reviews, nil
}
