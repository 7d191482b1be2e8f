package api

import (
	"net/http"

	"github.com/resenaapp/resena-server/internal/domain"
	"github.com/resenaapp/resena-server/internal/http/response"
	"github.com/resenaapp/resena-server/internal/service"
)

// registerResponse nests the created user under "usuario".
type registerResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"usuario"`
}

// loginResponse is the flat shape the front-end has always consumed.
type loginResponse struct {
	Token        string `json:"token"`
	ID           int64  `json:"id"`
	Username     string `json:"usuario"`
	ProfileImage string `json:"perfil"`
}

// handleRegister creates an account.
// POST /registro
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	result, err := s.auth.Register(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Created(w, registerResponse{
		Token: result.Token,
		User:  result.User,
	}, s.logger.Logger)
}

// handleLogin authenticates an existing account.
// POST /login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	result, err := s.auth.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Success(w, loginResponse{
		Token:        result.Token,
		ID:           result.User.ID,
		Username:     result.User.Username,
		ProfileImage: result.User.ProfileImage,
	}, s.logger.Logger)
}
