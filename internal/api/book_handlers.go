package api

import (
	"io"
	"net/http"

	"github.com/resenaapp/resena-server/internal/http/response"
	"github.com/resenaapp/resena-server/internal/service"
)

// maxCoverSize caps uploaded cover images at 10 MiB.
const maxCoverSize = 10 << 20

// createdResponse returns just the new resource's id.
type createdResponse struct {
	ID int64 `json:"id"`
}

// handleListBooks returns the whole catalog, newest first.
// GET /libros
func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.books.ListBooks(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, books, s.logger.Logger)
}

// handleGetBook returns a single catalog entry.
// GET /libro/{id}
func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	bookID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	book, err := s.books.GetBook(r.Context(), bookID)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, book, s.logger.Logger)
}

// handleSearchBooks returns books matching ?texto= in title, author,
// or genre. Empty text matches everything.
// GET /busqueda
func (s *Server) handleSearchBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.books.SearchBooks(r.Context(), r.URL.Query().Get("texto"))
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, books, s.logger.Logger)
}

// handleCreateBook adds a catalog entry from a multipart form with a
// cover image under the "portada" file field.
// POST /libro/nuevo
func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCoverSize)
	if err := r.ParseMultipartForm(maxCoverSize); err != nil {
		response.BadRequest(w, "invalid multipart form", s.logger.Logger)
		return
	}

	req := service.CreateBookRequest{
		Title:           r.FormValue("titulo"),
		Author:          r.FormValue("autor"),
		Genre:           r.FormValue("genero"),
		PublicationDate: r.FormValue("fecha_publicacion"),
		PageCount:       r.FormValue("paginas"),
		Synopsis:        r.FormValue("sinopsis"),
	}

	file, header, err := r.FormFile("portada")
	if err != nil {
		response.BadRequest(w, "field portada is required", s.logger.Logger)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(w, "failed to read portada", s.logger.Logger)
		return
	}
	req.CoverFilename = header.Filename
	req.CoverData = data

	if claims := getClaims(r); claims != nil {
		s.logger.Debug("book upload", "user_id", claims.UserID, "usuario", claims.Username)
	}

	book, err := s.books.CreateBook(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Created(w, createdResponse{ID: book.ID}, s.logger.Logger)
}
