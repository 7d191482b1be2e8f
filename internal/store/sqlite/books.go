package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/resenaapp/resena-server/internal/domain"
	"github.com/resenaapp/resena-server/internal/store"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `id, created_at, titulo, autor, url_portada,
	portada_blurhash, genero, fecha_publicacion, paginas, sinopsis`

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var b domain.Book
	var createdAt string

	err := scanner.Scan(
		&b.ID,
		&createdAt,
		&b.Title,
		&b.Author,
		&b.CoverURL,
		&b.CoverBlurHash,
		&b.Genre,
		&b.PublicationDate,
		&b.PageCount,
		&b.Synopsis,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// collectBooks drains rows into a slice of books.
func collectBooks(rows *sql.Rows) ([]*domain.Book, error) {
	defer rows.Close()

	books := []*domain.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, store.ErrInternal.WithCause(err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}
	return books, nil
}

// CreateBook inserts a new catalog entry and fills in the generated id.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	if book.CreatedAt.IsZero() {
		book.CreatedAt = time.Now()
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO books (created_at, titulo, autor, url_portada,
			portada_blurhash, genero, fecha_publicacion, paginas, sinopsis)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		formatTime(book.CreatedAt),
		book.Title,
		book.Author,
		book.CoverURL,
		book.CoverBlurHash,
		book.Genre,
		book.PublicationDate,
		book.PageCount,
		book.Synopsis,
	)
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}
	book.ID = id
	return nil
}

// ListBooks returns all books ordered by id descending (newest first).
func (s *Store) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books ORDER BY id DESC`)
	if err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}
	return collectBooks(rows)
}

// GetBook retrieves a book by ID.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, id)

	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound.WithMessage("libro not found")
	}
	if err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}
	return b, nil
}

// SearchBooks returns books whose title, author, or genre contains text,
// case-insensitively. Empty text matches everything, as the front-end
// expects from the search box.
// The case fold happens in Go: SQLite's LOWER and LIKE only fold ASCII,
// which would miss accented titles ("NIÑO" vs "niño"). The catalog is
// served unpaginated anyway, so scanning it here costs nothing extra.
func (s *Store) SearchBooks(ctx context.Context, text string) ([]*domain.Book, error) {
	books, err := s.ListBooks(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(text)
	if needle == "" {
		return books, nil
	}

	matched := []*domain.Book{}
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Title), needle) ||
			strings.Contains(strings.ToLower(b.Author), needle) ||
			strings.Contains(strings.ToLower(b.Genre), needle) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}
