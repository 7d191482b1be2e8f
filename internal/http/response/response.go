// Package response provides standardized HTTP response formatting and error handling utilities.
//
// Responses carry the payload directly (no envelope); error responses
// are the generic bodies the front-end expects, so storage detail never
// leaks to clients.
package response

import (
	"encoding/json/v2"
	"errors"
	"log/slog"
	"net/http"

	domainerrors "github.com/resenaapp/resena-server/internal/errors"
	"github.com/resenaapp/resena-server/internal/store"
)

// Generic error messages, matching what the front-end displays.
const (
	MsgServerError = "Error en el servidor"
	MsgNotFound    = "Recurso no encontrado"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

// JSON writes a JSON response with the given status code using json/v2.
func JSON(w http.ResponseWriter, status int, data any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	// json/v2 MarshalWrite doesn't add a newline, but that's fine for HTTP responses.
	if err := json.MarshalWrite(w, data); err != nil {
		if logger != nil {
			logger.Error("Failed to encode JSON response", "error", err)
		}
	}
}

// Success writes a successful JSON response (200 OK).
func Success(w http.ResponseWriter, data any, logger *slog.Logger) {
	JSON(w, http.StatusOK, data, logger)
}

// Created writes a created response (201 Created).
func Created(w http.ResponseWriter, data any, logger *slog.Logger) {
	JSON(w, http.StatusCreated, data, logger)
}

// Error writes an error response with the given status code.
func Error(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	JSON(w, status, errorBody{Error: message}, logger)
}

// BadRequest writes a 400 Bad Request response.
func BadRequest(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusBadRequest, message, logger)
}

// Unauthorized writes a 401 Unauthorized response.
func Unauthorized(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusUnauthorized, message, logger)
}

// Forbidden writes a 403 Forbidden response.
func Forbidden(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusForbidden, message, logger)
}

// NotFound writes a 404 Not Found response.
func NotFound(w http.ResponseWriter, logger *slog.Logger) {
	Error(w, http.StatusNotFound, MsgNotFound, logger)
}

// UnprocessableEntity writes a 422 Unprocessable Entity response.
func UnprocessableEntity(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusUnprocessableEntity, message, logger)
}

// Conflict writes a 409 Conflict response.
func Conflict(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusConflict, message, logger)
}

// InternalError writes a 500 Internal Server Error response with the
// generic message. Detail stays in the logs.
func InternalError(w http.ResponseWriter, logger *slog.Logger) {
	Error(w, http.StatusInternalServerError, MsgServerError, logger)
}

// HandleError writes an appropriate HTTP response based on the error type.
// Domain and store errors are mapped to their HTTP codes, unknown errors
// become 500 with the generic message.
func HandleError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var domainErr *domainerrors.Error
	if errors.As(err, &domainErr) {
		status := domainErr.HTTPStatus()
		switch status {
		case http.StatusInternalServerError:
			if logger != nil {
				logger.Error("Internal error", "error", err)
			}
			InternalError(w, logger)
		case http.StatusNotFound:
			NotFound(w, logger)
		default:
			Error(w, status, domainErr.Message, logger)
		}
		return
	}

	var storeErr *store.Error
	if errors.As(err, &storeErr) {
		status := storeErr.HTTPCode()
		switch status {
		case http.StatusInternalServerError:
			if logger != nil {
				logger.Error("Storage failure", "error", err)
			}
			InternalError(w, logger)
		case http.StatusNotFound:
			NotFound(w, logger)
		default:
			Error(w, status, storeErr.Message, logger)
		}
		return
	}

	// Unknown error = 500
	if logger != nil {
		logger.Error("Unhandled error", "error", err)
	}
	InternalError(w, logger)
}
