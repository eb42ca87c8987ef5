// ABOUTME: HTTP server assembly for the tasknest API
// ABOUTME: Wires auth middleware, task routes, and AI suggestion routes onto a ServeMux

package api

import (
	"log/slog"
	"net/http"

	"github.com/tasknest/tasknest/internal/auth"
	"github.com/tasknest/tasknest/internal/suggest"
	"github.com/tasknest/tasknest/internal/task"
	"github.com/tasknest/tasknest/internal/user"
)

// Server holds the services behind the HTTP API.
type Server struct {
	users       *user.Service
	tasks       *task.Service
	suggestions *suggest.Service
	verifier    auth.Verifier
	logger      *slog.Logger
}

// NewServer creates the API server around its services.
func NewServer(users *user.Service, tasks *task.Service, suggestions *suggest.Service, verifier auth.Verifier) *Server {
	return &Server{
		users:       users,
		tasks:       tasks,
		suggestions: suggestions,
		verifier:    verifier,
		logger:      slog.Default().With("component", "api"),
	}
}

// Handler builds the full route table. Auth endpoints and the health check
// are public; every task and AI route sits behind the credential gate.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	protected := http.NewServeMux()
	protected.HandleFunc("GET /api/tasks", s.handleListTasks)
	protected.HandleFunc("POST /api/tasks", s.handleCreateTask)
	protected.HandleFunc("GET /api/tasks/{id}", s.handleGetTask)
	protected.HandleFunc("PUT /api/tasks/{id}", s.handleUpdateTask)
	protected.HandleFunc("DELETE /api/tasks/{id}", s.handleDeleteTask)
	protected.HandleFunc("POST /api/ai/breakdown", s.handleBreakdown)
	protected.HandleFunc("POST /api/ai/priority", s.handlePriority)
	protected.HandleFunc("POST /api/ai/estimate", s.handleEstimate)

	gate := auth.Middleware(s.verifier)
	mux.Handle("/api/tasks", gate(protected))
	mux.Handle("/api/tasks/", gate(protected))
	mux.Handle("/api/ai/", gate(protected))

	return mux
}

// handleHealth handles GET /health requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
