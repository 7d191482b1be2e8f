package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/resenaapp/resena-server/internal/http/response"
)

// handleGetCover serves a stored cover image.
// GET /portadas/{filename}
func (s *Server) handleGetCover(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	data, err := s.books.GetCover(filename)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	w.Header().Set("Content-Type", coverContentType(filename))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // Nothing to do if the client went away mid-write
	_, _ = w.Write(data)
}

func coverContentType(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".png"):
		return "image/png"
	case strings.HasSuffix(filename, ".gif"):
		return "image/gif"
	case strings.HasSuffix(filename, ".webp"):
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
