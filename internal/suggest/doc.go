// Package suggest normalizes free-text generator output into validated,
// bounded task suggestions.
//
// # Pipelines
//
// Three symmetric pipelines, one per suggestion kind, each following
// build prompt → generate → parse → validate → fallback-or-accept:
//
//   - Subtasks: 1-5 short lines; unusable lines dropped, excess truncated.
//   - Priority: one of low, medium, high, urgent; anything else → medium.
//   - EstimateMinutes: an integer strictly between 0 and 10000; anything
//     else → 60.
//
// # Failure policy
//
// Priority and EstimateMinutes recover every failure — bad reply, transport
// error, timeout — into their fallback value and never return an error.
// Subtasks has no sensible fallback list, so a generator failure surfaces as
// ErrGenerationFailed while a parseable-but-empty reply yields an empty
// slice with no error. Callers must preserve this asymmetry.
//
// Outputs are safe to persist or display without further validation.
package suggest
