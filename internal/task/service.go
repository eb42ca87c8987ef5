// ABOUTME: Task service enforcing ownership authorization on every single-resource operation
// ABOUTME: Wraps the store with validation, defaulting, and owner scoping

package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tasknest/tasknest/internal/store"
)

// ErrValidation is returned when a request is missing or carries invalid fields.
var ErrValidation = errors.New("validation failed")

// CreateInput holds the fields a caller may set when creating a task.
// Owner comes from the authenticated identity, never from input.
type CreateInput struct {
	Title            string
	Description      string
	Status           store.TaskStatus
	Priority         store.Priority
	DueDate          *time.Time
	EstimatedMinutes *int
	Tags             []string
}

// Service performs task operations scoped to an owning identity.
type Service struct {
	store  store.Store
	logger *slog.Logger
}

// NewService creates a task service backed by the given store.
func NewService(s store.Store) *Service {
	return &Service{
		store:  s,
		logger: slog.Default().With("component", "task"),
	}
}

// Authorize fetches the task and checks that it is owned by the given
// identity. A missing task and a task owned by someone else both return
// store.ErrNotFound: the two cases must stay indistinguishable to callers
// so existence never leaks across users.
func (s *Service) Authorize(ctx context.Context, identity, taskID string) (*store.Task, error) {
	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.OwnerID != identity {
		return nil, store.ErrNotFound
	}
	return task, nil
}

// Create validates the input and stores a new task owned by identity.
// Status defaults to todo and priority to medium when unset.
func (s *Service) Create(ctx context.Context, identity string, in CreateInput) (*store.Task, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.Status != "" && !in.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, in.Status)
	}
	if in.Priority != "" && !in.Priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, in.Priority)
	}
	if in.EstimatedMinutes != nil && *in.EstimatedMinutes < 0 {
		return nil, fmt.Errorf("%w: estimated minutes must be non-negative", ErrValidation)
	}

	task := &store.Task{
		OwnerID:          identity,
		Title:            in.Title,
		Description:      in.Description,
		Status:           in.Status,
		Priority:         in.Priority,
		DueDate:          in.DueDate,
		EstimatedMinutes: in.EstimatedMinutes,
		Tags:             in.Tags,
	}
	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	s.logger.Info("task created", "task_id", task.ID, "owner_id", identity)
	return task, nil
}

// Get retrieves a single task after the ownership check.
func (s *Service) Get(ctx context.Context, identity, taskID string) (*store.Task, error) {
	return s.Authorize(ctx, identity, taskID)
}

// List retrieves all tasks owned by identity. There is no per-resource check:
// the store query itself is filtered by owner, which gives the equivalent
// guarantee.
func (s *Service) List(ctx context.Context, identity string) ([]*store.Task, error) {
	return s.store.ListTasks(ctx, identity)
}

// Update applies a partial update to a task after the ownership check.
// Nil fields in the update are left unchanged; ownership cannot change.
func (s *Service) Update(ctx context.Context, identity, taskID string, update store.TaskUpdate) (*store.Task, error) {
	if update.Title != nil && *update.Title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
	}
	if update.Status != nil && !update.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *update.Status)
	}
	if update.Priority != nil && !update.Priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, *update.Priority)
	}
	if update.EstimatedMinutes != nil && *update.EstimatedMinutes < 0 {
		return nil, fmt.Errorf("%w: estimated minutes must be non-negative", ErrValidation)
	}

	if _, err := s.Authorize(ctx, identity, taskID); err != nil {
		return nil, err
	}

	task, err := s.store.UpdateTask(ctx, taskID, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info("task updated", "task_id", taskID, "owner_id", identity)
	return task, nil
}

// Delete removes a task after the ownership check. Irreversible.
func (s *Service) Delete(ctx context.Context, identity, taskID string) error {
	if _, err := s.Authorize(ctx, identity, taskID); err != nil {
		return err
	}

	if err := s.store.DeleteTask(ctx, taskID); err != nil {
		return err
	}

	s.logger.Info("task deleted", "task_id", taskID, "owner_id", identity)
	return nil
}
