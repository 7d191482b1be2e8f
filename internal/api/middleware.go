package api

import (
	"context"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/resenaapp/resena-server/internal/auth"
	"github.com/resenaapp/resena-server/internal/http/response"
)

// contextKey is a private type for request context keys.
type contextKey string

const claimsContextKey contextKey = "claims"

// requireAuth rejects requests without a valid Bearer token.
// A missing or malformed header is 401; a token that fails verification
// is 403. Verified claims are attached to the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			response.Unauthorized(w, "missing authorization header", s.logger.Logger)
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			response.Unauthorized(w, "malformed authorization header", s.logger.Logger)
			return
		}

		claims, err := s.auth.VerifyAccessToken(tokenString)
		if err != nil {
			response.Forbidden(w, "invalid token", s.logger.Logger)
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getClaims returns the verified token claims from the request context,
// or nil outside requireAuth.
func getClaims(r *http.Request) *auth.AccessClaims {
	claims, _ := r.Context().Value(claimsContextKey).(*auth.AccessClaims)
	return claims
}

// requestLogger logs each request with method, path, status, and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
	})
}

// recoverer converts panics into the API's JSON 500 body.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				s.logger.Error("panic recovered",
					"panic", rec,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)
				response.InternalError(w, s.logger.Logger)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
