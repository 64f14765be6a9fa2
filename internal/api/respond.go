// ABOUTME: Response envelope helpers for the items API
// ABOUTME: Maps operation errors onto HTTP status codes and JSON error bodies

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/duowu/to-do-tutorial/internal/store"
)

// Errors raised by request handling before the store is reached.
var (
	errInvalidUID   = errors.New("invalid item uid")
	errNameRequired = errors.New("name is required")
)

// respondJSON writes v as the JSON response body with the given status.
func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// respondError writes a JSON error body for a failed operation.
// Exactly two error classes are distinguished for clients: a uid that
// does not resolve to an item maps to 404, every other failure
// (validation, malformed input, store error) maps to 400. The body is
// always {"message": <text>}.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	if errors.Is(err, store.ErrNotFound) {
		status = http.StatusNotFound
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(map[string]string{"message": err.Error()}); encErr != nil {
		s.logger.Error("failed to encode error response", "error", encErr)
	}
}
