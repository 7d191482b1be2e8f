// Package api wires the HTTP surface: routing, middleware, and handlers.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/resenaapp/resena-server/internal/config"
	"github.com/resenaapp/resena-server/internal/http/response"
	"github.com/resenaapp/resena-server/internal/logger"
	"github.com/resenaapp/resena-server/internal/service"
)

// Server holds the HTTP router and the services the handlers call.
type Server struct {
	router  *chi.Mux
	config  *config.Config
	logger  *logger.Logger
	auth    *service.AuthService
	books   *service.BookService
	reviews *service.ReviewService
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	cfg *config.Config,
	log *logger.Logger,
	auth *service.AuthService,
	books *service.BookService,
	reviews *service.ReviewService,
) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		config:  cfg,
		logger:  log,
		auth:    auth,
		books:   books,
		reviews: reviews,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(s.recoverer)

	// The front-end is served from a different origin during development.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	// Public routes.
	s.router.Post("/registro", s.handleRegister)
	s.router.Post("/login", s.handleLogin)

	s.router.Get("/libros", s.handleListBooks)
	s.router.Get("/libro/{id}", s.handleGetBook)
	s.router.Get("/busqueda", s.handleSearchBooks)
	s.router.Get("/portadas/{filename}", s.handleGetCover)

	s.router.Get("/reviews/usuario/{id_usuario}", s.handleListReviewsForUser)
	s.router.Get("/reviews/{id_libro}", s.handleListReviewsForBook)

	// Protected routes.
	s.router.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Post("/libro/nuevo", s.handleCreateBook)
		r.Post("/reviews/nueva", s.handleCreateReview)
	})

	// Unknown routes get the API's JSON 404 body, not chi's plain text.
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, s.logger.Logger)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, s.logger.Logger)
	})
}
