package service

import (
	"context"
	"path"
	"strconv"
	"strings"

	"github.com/resenaapp/resena-server/internal/domain"
	"github.com/resenaapp/resena-server/internal/errors"
	"github.com/resenaapp/resena-server/internal/id"
	"github.com/resenaapp/resena-server/internal/logger"
	"github.com/resenaapp/resena-server/internal/media/images"
	"github.com/resenaapp/resena-server/internal/store"
)

// BookService handles catalog operations.
type BookService struct {
	store  store.Store
	covers *images.Storage
	logger *logger.Logger
}

// NewBookService creates a new catalog service.
func NewBookService(s store.Store, covers *images.Storage, log *logger.Logger) *BookService {
	return &BookService{
		store:  s,
		covers: covers,
		logger: log,
	}
}

// CreateBookRequest carries the multipart form fields for a new catalog
// entry. PageCount stays a string so that presence (400) and format
// (422) can be reported separately.
type CreateBookRequest struct {
	Title           string `json:"titulo" validate:"required"`
	Author          string `json:"autor" validate:"required"`
	Genre           string `json:"genero" validate:"required"`
	PublicationDate string `json:"fecha_publicacion" validate:"required"`
	PageCount       string `json:"paginas" validate:"required"`
	Synopsis        string `json:"sinopsis" validate:"required"`

	CoverFilename string `json:"-"`
	CoverData     []byte `json:"-"`
}

// CreateBook validates the request, stores the cover image, computes
// its BlurHash, and inserts the catalog entry.
func (s *BookService) CreateBook(ctx context.Context, req CreateBookRequest) (*domain.Book, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}
	if len(req.CoverData) == 0 {
		return nil, errors.Validation("field portada is required")
	}

	pages, err := strconv.Atoi(strings.TrimSpace(req.PageCount))
	if err != nil || pages <= 0 {
		return nil, errors.Format("field paginas must be a positive integer")
	}
	if !domain.ValidPublicationDate(req.PublicationDate) {
		return nil, errors.Format("field fecha_publicacion must be YYYY-MM-DD")
	}

	filename, err := s.saveCover(req.CoverFilename, req.CoverData)
	if err != nil {
		return nil, err
	}

	// A cover that doesn't decode still gets stored and served; it just
	// has no placeholder hash.
	hash, err := images.ComputeBlurHash(req.CoverData)
	if err != nil {
		s.logger.Warn("failed to compute cover blurhash", "filename", filename, "error", err)
	}

	book := &domain.Book{
		Title:           req.Title,
		Author:          req.Author,
		CoverURL:        "/portadas/" + filename,
		CoverBlurHash:   hash,
		Genre:           req.Genre,
		PublicationDate: req.PublicationDate,
		PageCount:       pages,
		Synopsis:        req.Synopsis,
	}

	if err := s.store.CreateBook(ctx, book); err != nil {
		return nil, errors.Internal("failed to create book").WithCause(err)
	}

	s.logger.Info("book created", "book_id", book.ID, "titulo", book.Title)

	return book, nil
}

// ListBooks returns the whole catalog, newest first.
func (s *BookService) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	books, err := s.store.ListBooks(ctx)
	if err != nil {
		return nil, errors.Internal("failed to list books").WithCause(err)
	}
	return books, nil
}

// GetBook returns a single catalog entry.
func (s *BookService) GetBook(ctx context.Context, bookID int64) (*domain.Book, error) {
	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFoundf("book %d not found", bookID)
		}
		return nil, errors.Internal("failed to load book").WithCause(err)
	}
	return book, nil
}

// SearchBooks returns books matching text in title, author, or genre.
func (s *BookService) SearchBooks(ctx context.Context, text string) ([]*domain.Book, error) {
	books, err := s.store.SearchBooks(ctx, text)
	if err != nil {
		return nil, errors.Internal("failed to search books").WithCause(err)
	}
	return books, nil
}

// GetCover returns stored cover image bytes by filename.
func (s *BookService) GetCover(filename string) ([]byte, error) {
	if !s.covers.Exists(filename) {
		return nil, errors.NotFound("cover not found")
	}
	data, err := s.covers.Get(filename)
	if err != nil {
		return nil, errors.Internal("failed to read cover").WithCause(err)
	}
	return data, nil
}

// saveCover stores the uploaded cover under a unique name, keeping the
// original extension, and returns the stored filename.
func (s *BookService) saveCover(uploadName string, data []byte) (string, error) {
	name, err := id.Generate("cover")
	if err != nil {
		return "", errors.Internal("failed to generate cover filename").WithCause(err)
	}

	ext := strings.ToLower(path.Ext(uploadName))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		ext = ".jpg"
	}
	filename := name + ext

	if err := s.covers.Save(filename, data); err != nil {
		return "", errors.Internal("failed to store cover").WithCause(err)
	}
	return filename, nil
}
