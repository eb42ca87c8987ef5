// ABOUTME: HTTP handlers for the three AI suggestion endpoints
// ABOUTME: Require an identity but no ownership check, since no resource exists yet

package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tasknest/tasknest/internal/task"
)

// SuggestionRequest is the JSON request body shared by the AI endpoints.
// It is ephemeral: nothing here is persisted.
type SuggestionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// BreakdownResponse is the JSON response for POST /api/ai/breakdown.
type BreakdownResponse struct {
	Subtasks []string `json:"subtasks"`
}

// PriorityResponse is the JSON response for POST /api/ai/priority.
type PriorityResponse struct {
	Priority string `json:"priority"`
}

// EstimateResponse is the JSON response for POST /api/ai/estimate.
type EstimateResponse struct {
	EstimatedMinutes int `json:"estimated_minutes"`
}

// decodeSuggestionRequest reads and validates the shared request body.
func decodeSuggestionRequest(r *http.Request) (SuggestionRequest, error) {
	var req SuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, fmt.Errorf("%w: invalid request body", task.ErrValidation)
	}
	if req.Title == "" {
		return req, fmt.Errorf("%w: title is required", task.ErrValidation)
	}
	return req, nil
}

// handleBreakdown handles POST /api/ai/breakdown requests.
// An empty subtask list is a valid outcome, not an error.
func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSuggestionRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	subtasks, err := s.suggestions.Subtasks(r.Context(), req.Title, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}

	if subtasks == nil {
		subtasks = []string{}
	}
	writeJSON(w, http.StatusOK, BreakdownResponse{Subtasks: subtasks})
}

// handlePriority handles POST /api/ai/priority requests. Always succeeds for
// valid input: generator trouble resolves to the fallback priority.
func (s *Server) handlePriority(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSuggestionRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	priority := s.suggestions.Priority(r.Context(), req.Title, req.Description)
	writeJSON(w, http.StatusOK, PriorityResponse{Priority: string(priority)})
}

// handleEstimate handles POST /api/ai/estimate requests. Always succeeds for
// valid input: generator trouble resolves to the fallback estimate.
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSuggestionRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	minutes := s.suggestions.EstimateMinutes(r.Context(), req.Title, req.Description)
	writeJSON(w, http.StatusOK, EstimateResponse{EstimatedMinutes: minutes})
}
