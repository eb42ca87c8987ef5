// ABOUTME: Identity propagation through request handlers via context
// ABOUTME: Provides WithIdentity/IdentityFromContext for downstream ownership checks

package auth

import (
	"context"
)

// identityKey is the key type for storing the authenticated identity in context.
type identityKey struct{}

// WithIdentity returns a new context with the authenticated identity attached.
func WithIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext retrieves the authenticated identity from the context.
// The second return value is false if no identity is bound.
func IdentityFromContext(ctx context.Context) (string, bool) {
	identity, ok := ctx.Value(identityKey{}).(string)
	return identity, ok
}

// MustIdentityFromContext retrieves the authenticated identity, panicking if
// not present. Handlers behind the auth middleware may rely on it.
func MustIdentityFromContext(ctx context.Context) string {
	identity, ok := IdentityFromContext(ctx)
	if !ok {
		panic("auth: identity not found in context")
	}
	return identity
}
