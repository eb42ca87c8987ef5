// ABOUTME: Tests for user registration and login
// ABOUTME: Covers validation, duplicate emails, bad passwords, and credential issue

package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasknest/tasknest/internal/auth"
	"github.com/tasknest/tasknest/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	signer := auth.NewSigner([]byte("test-secret"), time.Hour)
	return NewService(store.NewMockStore(), signer)
}

func TestService_Register(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	u, token, err := svc.Register(ctx, "Alice@Example.com", "Alice", "correct-horse")
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "correct-horse", u.PasswordHash)

	// The issued credential verifies back to the new identity.
	signer := auth.NewSigner([]byte("test-secret"), time.Hour)
	identity, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, identity)
}

func TestService_Register_Validation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		username string
		password string
	}{
		{name: "empty email", email: "", username: "Alice", password: "correct-horse"},
		{name: "bad email", email: "not-an-email", username: "Alice", password: "correct-horse"},
		{name: "empty name", email: "a@example.com", username: "", password: "correct-horse"},
		{name: "short password", email: "a@example.com", username: "Alice", password: "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Register(ctx, tt.email, tt.username, tt.password)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "alice@example.com", "Alice", "correct-horse")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "alice@example.com", "Other Alice", "different-pass")
	assert.ErrorIs(t, err, store.ErrDuplicateEmail)
}

func TestService_Login(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, "alice@example.com", "Alice", "correct-horse")
	require.NoError(t, err)

	u, token, err := svc.Login(ctx, "alice@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)
	assert.NotEmpty(t, token)
}

func TestService_Login_Invalid(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "alice@example.com", "Alice", "correct-horse")
	require.NoError(t, err)

	// Unknown email and wrong password yield the same error.
	_, _, errUnknown := svc.Login(ctx, "nobody@example.com", "correct-horse")
	_, _, errWrongPass := svc.Login(ctx, "alice@example.com", "wrong-horse")

	assert.ErrorIs(t, errUnknown, ErrInvalidLogin)
	assert.ErrorIs(t, errWrongPass, ErrInvalidLogin)
	assert.Equal(t, errUnknown, errWrongPass)
}
