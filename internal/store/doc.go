// Package store provides persistence for tasknest users and tasks.
//
// # Implementations
//
//   - SQLiteStore: production storage using modernc.org/sqlite with WAL mode
//     and automatic schema creation.
//   - MockStore: in-memory implementation for tests.
//
// # Semantics
//
// Each operation is individually atomic; there is no transactional wrapping
// across operations and no optimistic concurrency control. Two concurrent
// updates to the same task race with last-write-wins semantics.
//
// UpdateTask takes a TaskUpdate patch whose nil fields are left unchanged.
// The patch has no owner field: a task's owner is fixed at creation.
//
// ErrNotFound is the single sentinel for missing entities. Callers performing
// ownership checks reuse it for "exists but not yours" so the two cases are
// indistinguishable downstream.
package store
