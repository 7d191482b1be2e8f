// Package store defines the persistence interface for users, books, and reviews.
package store

import (
	"context"

	"github.com/resenaapp/resena-server/internal/domain"
)

// Store is the persistence interface the services depend on.
// Implementations return *Error values so callers can map failures to
// HTTP statuses without inspecting driver-specific errors.
type Store interface {
	// CreateUser inserts a new user and sets user.ID and user.CreatedAt.
	// Returns ErrAlreadyExists if the username is taken.
	CreateUser(ctx context.Context, user *domain.User) error
	// GetUserByUsername returns the user with the given username,
	// or ErrNotFound.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	// GetUser returns the user with the given id, or ErrNotFound.
	GetUser(ctx context.Context, id int64) (*domain.User, error)

	// CreateBook inserts a new catalog entry and sets book.ID and
	// book.CreatedAt.
	CreateBook(ctx context.Context, book *domain.Book) error
	// ListBooks returns all books ordered by id descending (newest first).
	ListBooks(ctx context.Context) ([]*domain.Book, error)
	// GetBook returns the book with the given id, or ErrNotFound.
	GetBook(ctx context.Context, id int64) (*domain.Book, error)
	// SearchBooks returns books whose title, author, or genre contains
	// text, case-insensitively. Empty text matches everything.
	SearchBooks(ctx context.Context, text string) ([]*domain.Book, error)

	// CreateReview inserts a review, stamping CreatedAt server-side, and
	// sets review.ID. Returns ErrNotFound if the referenced user or book
	// does not exist.
	CreateReview(ctx context.Context, review *domain.Review) error
	// ListReviewsForBook returns reviews of a book joined with reviewer
	// identity, newest first.
	ListReviewsForBook(ctx context.Context, bookID int64) ([]*domain.BookReview, error)
	// ListReviewsForUser returns reviews by a user joined with book
	// metadata, newest first.
	ListReviewsForUser(ctx context.Context, userID int64) ([]*domain.UserReview, error)
}
