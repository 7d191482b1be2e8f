package service

import (
	"context"

	"github.com/resenaapp/resena-server/internal/auth"
	"github.com/resenaapp/resena-server/internal/domain"
	"github.com/resenaapp/resena-server/internal/errors"
	"github.com/resenaapp/resena-server/internal/logger"
	"github.com/resenaapp/resena-server/internal/store"
)

// AuthService handles account registration and login.
type AuthService struct {
	store  store.Store
	tokens *auth.TokenService
	logger *logger.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(s store.Store, tokens *auth.TokenService, log *logger.Logger) *AuthService {
	return &AuthService{
		store:  s,
		tokens: tokens,
		logger: log,
	}
}

// RegisterRequest carries the credentials for a new account.
type RegisterRequest struct {
	Username string `json:"usuario" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest carries the credentials for an existing account.
type LoginRequest struct {
	Username string `json:"usuario" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is a successful registration or login: the user plus a
// fresh access token.
type AuthResult struct {
	User  *domain.User
	Token string
}

// Register creates a new account with a random profile image and
// returns it with an access token.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, errors.Internal("failed to hash password").WithCause(err)
	}

	user := &domain.User{
		Username:     req.Username,
		PasswordHash: hash,
		ProfileImage: domain.RandomProfileImage(),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, errors.AlreadyExists("usuario already in use")
		}
		return nil, errors.Internal("failed to create user").WithCause(err)
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, errors.Internal("failed to generate token").WithCause(err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "usuario", user.Username)

	return &AuthResult{User: user, Token: token}, nil
}

// Login authenticates a user by username and password.
// An unknown username is unauthorized; a wrong password for a known
// username is invalid credentials.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	if err := checkStruct(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.Unauthorized("unknown usuario")
		}
		return nil, errors.Internal("failed to load user").WithCause(err)
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, errors.InvalidCredentials("wrong password")
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, errors.Internal("failed to generate token").WithCause(err)
	}

	s.logger.Info("user logged in", "user_id", user.ID, "usuario", user.Username)

	return &AuthResult{User: user, Token: token}, nil
}

// VerifyAccessToken validates a bearer token and returns its claims.
func (s *AuthService) VerifyAccessToken(tokenString string) (*auth.AccessClaims, error) {
	claims, err := s.tokens.VerifyToken(tokenString)
	if err != nil {
		return nil, errors.Forbidden("invalid token").WithCause(err)
	}
	return claims, nil
}
