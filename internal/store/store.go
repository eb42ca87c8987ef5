// ABOUTME: Store interface and data types for tasknest persistence
// ABOUTME: Defines User, Task structs and the Store interface for database operations

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when registering an email that already exists
var ErrDuplicateEmail = errors.New("email already registered")

// TaskStatus is the lifecycle state of a task
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Valid reports whether the status is one of the known values.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// Priority is the urgency level of a task
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Valid reports whether the priority is one of the known values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// User represents a registered account
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// Task represents a single task owned by a user. OwnerID is immutable after
// creation; every read and mutation must be scoped to it.
type Task struct {
	ID               string
	OwnerID          string
	Title            string
	Description      string
	Status           TaskStatus
	Priority         Priority
	DueDate          *time.Time
	EstimatedMinutes *int
	Tags             []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TaskUpdate is a partial task patch. Nil fields are left unchanged.
// OwnerID is deliberately absent: ownership never changes.
type TaskUpdate struct {
	Title            *string
	Description      *string
	Status           *TaskStatus
	Priority         *Priority
	DueDate          *time.Time
	EstimatedMinutes *int
	Tags             []string
}

// Store defines the interface for user and task persistence
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// Tasks
	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id string) (*Task, error)
	ListTasks(ctx context.Context, ownerID string) ([]*Task, error)
	UpdateTask(ctx context.Context, id string, update TaskUpdate) (*Task, error)
	DeleteTask(ctx context.Context, id string) error

	Close() error
}
