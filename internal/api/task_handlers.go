// ABOUTME: HTTP handlers for task CRUD, all scoped to the authenticated identity
// ABOUTME: Updates use pointer fields so only provided values change

package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/tasknest/tasknest/internal/auth"
	"github.com/tasknest/tasknest/internal/store"
	"github.com/tasknest/tasknest/internal/task"
)

// CreateTaskRequest is the JSON request body for POST /api/tasks.
type CreateTaskRequest struct {
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Status           string     `json:"status"`
	Priority         string     `json:"priority"`
	DueDate          *time.Time `json:"due_date"`
	EstimatedMinutes *int       `json:"estimated_minutes"`
	Tags             []string   `json:"tags"`
}

// UpdateTaskRequest is the JSON request body for PUT /api/tasks/{id}.
// Absent fields are left unchanged.
type UpdateTaskRequest struct {
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	Status           *string    `json:"status"`
	Priority         *string    `json:"priority"`
	DueDate          *time.Time `json:"due_date"`
	EstimatedMinutes *int       `json:"estimated_minutes"`
	Tags             []string   `json:"tags"`
}

// TaskResponse is the JSON shape of a task.
type TaskResponse struct {
	ID               string     `json:"id"`
	OwnerID          string     `json:"owner_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	Status           string     `json:"status"`
	Priority         string     `json:"priority"`
	DueDate          *time.Time `json:"due_date,omitempty"`
	EstimatedMinutes *int       `json:"estimated_minutes,omitempty"`
	Tags             []string   `json:"tags"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// ListTasksResponse is the JSON response for GET /api/tasks.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

func taskResponse(t *store.Task) TaskResponse {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return TaskResponse{
		ID:               t.ID,
		OwnerID:          t.OwnerID,
		Title:            t.Title,
		Description:      t.Description,
		Status:           string(t.Status),
		Priority:         string(t.Priority),
		DueDate:          t.DueDate,
		EstimatedMinutes: t.EstimatedMinutes,
		Tags:             tags,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

// handleCreateTask handles POST /api/tasks requests.
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	created, err := s.tasks.Create(r.Context(), identity, task.CreateInput{
		Title:            req.Title,
		Description:      req.Description,
		Status:           store.TaskStatus(req.Status),
		Priority:         store.Priority(req.Priority),
		DueDate:          req.DueDate,
		EstimatedMinutes: req.EstimatedMinutes,
		Tags:             req.Tags,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, taskResponse(created))
}

// handleListTasks handles GET /api/tasks requests.
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	tasks, err := s.tasks.List(r.Context(), identity)
	if err != nil {
		writeError(w, err)
		return
	}

	response := ListTasksResponse{Tasks: make([]TaskResponse, 0, len(tasks))}
	for _, t := range tasks {
		response.Tasks = append(response.Tasks, taskResponse(t))
	}
	writeJSON(w, http.StatusOK, response)
}

// handleGetTask handles GET /api/tasks/{id} requests.
func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	t, err := s.tasks.Get(r.Context(), identity, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, taskResponse(t))
}

// handleUpdateTask handles PUT /api/tasks/{id} requests.
func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	update := store.TaskUpdate{
		Title:            req.Title,
		Description:      req.Description,
		DueDate:          req.DueDate,
		EstimatedMinutes: req.EstimatedMinutes,
		Tags:             req.Tags,
	}
	if req.Status != nil {
		status := store.TaskStatus(*req.Status)
		update.Status = &status
	}
	if req.Priority != nil {
		priority := store.Priority(*req.Priority)
		update.Priority = &priority
	}

	t, err := s.tasks.Update(r.Context(), identity, r.PathValue("id"), update)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, taskResponse(t))
}

// handleDeleteTask handles DELETE /api/tasks/{id} requests.
func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	if err := s.tasks.Delete(r.Context(), identity, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
