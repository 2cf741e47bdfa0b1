// Package api implements the todos task server: the remote data service the
// CLI's remote store talks to. It exposes the four store operations over
// JSON HTTP, backed by a local SQLite database.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/marcus/todos/internal/store"
	"github.com/rs/cors"
)

// Config holds server configuration.
type Config struct {
	ListenAddr     string
	APIKey         string   // empty disables auth
	AllowedOrigins []string // CORS; empty allows none
}

// Server is the HTTP API server for todos.
type Server struct {
	config Config
	http   *http.Server
	store  store.Store
}

// NewServer creates a new Server with the given config and backing store.
func NewServer(cfg Config, st store.Store) *Server {
	s := &Server{
		config: cfg,
		store:  st,
	}

	s.http = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      s.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// Start begins listening for HTTP requests (non-blocking).
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	go func() {
		if err := s.http.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Error("http server", "err", err)
		}
	}()

	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// routes builds the HTTP handler with all routes and middleware.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("GET /v1/tasks", s.requireAuth(s.handleListTasks))
	mux.HandleFunc("POST /v1/tasks", s.requireAuth(s.handleCreateTask))
	mux.HandleFunc("PATCH /v1/tasks/{id}", s.requireAuth(s.handleUpdateTask))
	mux.HandleFunc("DELETE /v1/tasks/{id}", s.requireAuth(s.handleDeleteTask))

	c := cors.New(cors.Options{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	return chain(mux, recoveryMiddleware, requestIDMiddleware, loggerMiddleware, loggingMiddleware, maxBytesMiddleware(1<<20), c.Handler)
}

// requireAuth enforces the configured bearer API key, when one is set.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.config.APIKey != "" {
			if r.Header.Get("Authorization") != "Bearer "+s.config.APIKey {
				writeError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid API key")
				return
			}
		}
		next(w, r)
	}
}

// handleHealth returns a health check response.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
