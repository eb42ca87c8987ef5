// Package api assembles the tasknest HTTP surface.
//
// # Routes
//
// Public:
//
//	POST /api/auth/register
//	POST /api/auth/login
//	GET  /health
//
// Behind the credential gate:
//
//	GET    /api/tasks
//	POST   /api/tasks
//	GET    /api/tasks/{id}
//	PUT    /api/tasks/{id}
//	DELETE /api/tasks/{id}
//	POST   /api/ai/breakdown
//	POST   /api/ai/priority
//	POST   /api/ai/estimate
//
// The AI routes require an identity but skip ownership checks: they operate
// on an ephemeral title/description pair, not an existing resource.
//
// # Error mapping
//
// Missing or invalid credentials → 401 at the gate. NotFound → 404 with one
// message for both "does not exist" and "not yours". Validation → 400.
// Generator unusable (breakdown only) → 502. Everything else → 500 with a
// generic message; details go to the log only.
package api
