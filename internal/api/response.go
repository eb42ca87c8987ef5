// ABOUTME: JSON response helpers and the error-kind to status-code mapping
// ABOUTME: Keeps internal failures generic so no internal state leaks to clients

package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tasknest/tasknest/internal/store"
	"github.com/tasknest/tasknest/internal/suggest"
	"github.com/tasknest/tasknest/internal/task"
	"github.com/tasknest/tasknest/internal/user"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto HTTP statuses. Anything unrecognized is
// a server fault reported with a generic message; the real error goes to the
// log, never to the client.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		// One message for "does not exist" and "exists but not yours".
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "task not found"})
	case errors.Is(err, task.ErrValidation), errors.Is(err, user.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, store.ErrDuplicateEmail):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "email already registered"})
	case errors.Is(err, user.ErrInvalidLogin):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid email or password"})
	case errors.Is(err, suggest.ErrGenerationFailed):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to generate subtasks"})
	default:
		slog.Default().Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
