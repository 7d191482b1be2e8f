package domain

import (
	"regexp"
	"time"
)

// publicationDateRe matches the YYYY-MM-DD format the catalog stores.
var publicationDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Book represents a catalog entry.
// JSON field names follow the wire contract the front-end consumes.
type Book struct {
	ID              int64     `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	Title           string    `json:"titulo"`
	Author          string    `json:"autor"`
	CoverURL        string    `json:"url_portada"`
	CoverBlurHash   string    `json:"portada_blurhash,omitempty"`
	Genre           string    `json:"genero"`
	PublicationDate string    `json:"fecha_publicacion"`
	PageCount       int       `json:"paginas"`
	Synopsis        string    `json:"sinopsis"`
}

// ValidPublicationDate reports whether s is in YYYY-MM-DD form.
func ValidPublicationDate(s string) bool {
	return publicationDateRe.MatchString(s)
}
