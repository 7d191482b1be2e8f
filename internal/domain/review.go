package domain

import "time"

// Rating bounds for reviews.
const (
	MinRating = 1
	MaxRating = 5
)

// Review represents a user's review of a book.
type Review struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"creada_en"`
	Rating    int       `json:"puntuacion"`
	UserID    int64     `json:"id_usuario"`
	BookID    int64     `json:"id_libro"`
	Text      string    `json:"texto"`
}

// ValidRating reports whether r is within the allowed rating range.
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// BookReview is a review joined with the reviewer's identity,
// as returned by the per-book listing.
type BookReview struct {
	Review
	ReviewerName    string `json:"nombre_usuario"`
	ReviewerProfile string `json:"perfil"`
}

// UserReview is a review joined with the reviewed book's metadata,
// as returned by the per-user listing.
type UserReview struct {
	Review
	BookTitle    string `json:"titulo"`
	BookAuthor   string `json:"autor"`
	BookCoverURL string `json:"url_portada"`
}
