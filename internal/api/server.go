// ABOUTME: HTTP server wiring for the items API
// ABOUTME: Registers routes and wraps them with request-id logging middleware

package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/duowu/to-do-tutorial/internal/store"
)

// Server dispatches HTTP requests onto a Store.
// The store is injected so handlers carry no hidden shared state.
type Server struct {
	store  store.Store
	logger *slog.Logger
}

// New creates a Server backed by the given store.
func New(st store.Store) *Server {
	return &Server{
		store:  st,
		logger: slog.Default().With("component", "api"),
	}
}

// RegisterRoutes registers all item routes on the given mux
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /items", s.handleListItems)
	mux.HandleFunc("POST /items", s.handleCreateItem)
	mux.HandleFunc("GET /items/{uid}", s.handleGetItem)
	mux.HandleFunc("PUT /items/{uid}", s.handleUpdateItem)
	mux.HandleFunc("PATCH /items/{uid}", s.handlePatchItem)
	mux.HandleFunc("DELETE /items/{uid}", s.handleDeleteItem)
}

// Handler returns the complete HTTP handler: all routes wrapped with
// the request logging middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return s.logRequests(mux)
}

// handleHealth returns 200 OK if the server is alive.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// logRequests tags each request with a generated request id, echoes it
// in the X-Request-ID response header, and logs method, path, status,
// and duration once the handler returns.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		s.logger.Info("request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
