// Package auth provides credential issuing, verification, and the request
// authentication gate for tasknest.
//
// # Credentials
//
// Users authenticate with JWT tokens signed with HS256 using the configured
// jwt_secret. A credential asserts a single subject identity with issued-at
// and expiry claims; the validity window is fixed at issue time. There is no
// server-side session record and no revocation list: a credential is
// invalidated only by expiry, and rotating the secret invalidates all
// outstanding credentials at once.
//
// Verification deliberately does not distinguish expired from tampered or
// malformed tokens. All failures surface as ErrInvalidToken.
//
// # Request Gate
//
// Middleware() wraps protected endpoints. It reads the second segment of
// "Authorization: Bearer <token>", verifies it, and binds the identity into
// the request context:
//
//	identity := auth.MustIdentityFromContext(r.Context())
//
// A missing credential and a failed verification both terminate the request
// with 401 at the boundary, before any handler logic runs.
package auth
