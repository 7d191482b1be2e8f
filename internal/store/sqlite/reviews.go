package sqlite

import (
	"context"
	"time"

	"github.com/resenaapp/resena-server/internal/domain"
	"github.com/resenaapp/resena-server/internal/store"
)

// CreateReview inserts a review, stamping CreatedAt server-side, and
// fills in the generated id.
// Returns store.ErrNotFound if the referenced user or book does not exist.
func (s *Store) CreateReview(ctx context.Context, review *domain.Review) error {
	review.CreatedAt = time.Now()

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO reviews (creada_en, puntuacion, id_usuario, id_libro, texto)
		VALUES (?, ?, ?, ?, ?)`,
		formatTime(review.CreatedAt),
		review.Rating,
		review.UserID,
		review.BookID,
		review.Text,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrNotFound.WithMessage("usuario or libro not found")
		}
		return store.ErrInternal.WithCause(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	review.ID = id
	return nil
}

// ListReviewsForBook returns reviews of a book joined with reviewer
// identity, newest first.
func (s *Store) ListReviewsForBook(ctx context.Context, bookID int64) ([]*domain.BookReview, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT reviews.id, reviews.creada_en, reviews.puntuacion,
			reviews.id_usuario, reviews.id_libro, reviews.texto,
			users.usuario, users.perfil
		FROM reviews
		JOIN users ON reviews.id_usuario = users.id
		WHERE reviews.id_libro = ?
		ORDER BY reviews.creada_en DESC`,
		bookID)
	if err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}
	defer rows.Close()

	reviews := []*domain.BookReview{}
	for rows.Next() {
		var r domain.BookReview
		var createdAt string
		err := rows.Scan(
			&r.ID,
			&createdAt,
			&r.Rating,
			&r.UserID,
			&r.BookID,
			&r.Text,
			&r.ReviewerName,
			&r.ReviewerProfile,
		)
		if err != nil {
			return nil, store.ErrInternal.WithCause(err)
		}
		r.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, store.ErrInternal.WithCause(err)
		}
		reviews = append(reviews, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}
	return reviews, nil
}

// ListReviewsForUser returns reviews by a user joined with book
// metadata, newest first.
func (s *Store) ListReviewsForUser(ctx context.Context, userID int64) ([]*domain.UserReview, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT reviews.id, reviews.creada_en, reviews.puntuacion,
			reviews.id_usuario, reviews.id_libro, reviews.texto,
			books.titulo, books.autor, books.url_portada
		FROM reviews
		JOIN books ON reviews.id_libro = books.id
		WHERE reviews.id_usuario = ?
		ORDER BY reviews.creada_en DESC`,
		userID)
	if err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}
	defer rows.Close()

	reviews := []*domain.UserReview{}
	for rows.Next() {
		var r domain.UserReview
		var createdAt string
		err := rows.Scan(
			&r.ID,
			&createdAt,
			&r.Rating,
			&r.UserID,
			&r.BookID,
			&r.Text,
			&r.BookTitle,
			&r.BookAuthor,
			&r.BookCoverURL,
		)
		if err != nil {
			return nil, store.ErrInternal.WithCause(err)
		}
		r.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, store.ErrInternal.WithCause(err)
		}
		reviews = append(reviews, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}
	return reviews, nil
}
