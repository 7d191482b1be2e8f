package api

import (
	"encoding/json/v2"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/resenaapp/resena-server/internal/http/response"
)

// maxBodySize caps JSON request bodies at 1 MiB.
const maxBodySize = 1 << 20

// decodeJSON reads and decodes a JSON request body into dst.
// On failure it writes a 400 and returns false.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.UnmarshalRead(r.Body, dst); err != nil {
		response.BadRequest(w, "invalid request body", s.logger.Logger)
		return false
	}
	return true
}

// pathID parses a numeric path parameter.
// On failure it writes a 404 and returns false; a non-numeric id can
// never name an existing resource.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		response.NotFound(w, s.logger.Logger)
		return 0, false
	}
	return id, true
}
