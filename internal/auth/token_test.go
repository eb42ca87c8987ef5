// ABOUTME: Unit tests for credential issuing and verification
// ABOUTME: Covers round-trip, tampered signatures, expiry, and malformed tokens

package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSigner_RoundTrip(t *testing.T) {
	signer := NewSigner([]byte("test-secret-key-for-jwt-signing"), time.Hour)

	identity := "user-123"
	token, err := signer.Issue(identity)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	got, err := signer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	if got != identity {
		t.Errorf("Verify() = %q, want %q", got, identity)
	}
}

func TestSigner_InvalidToken(t *testing.T) {
	signer := NewSigner([]byte("test-secret-key-for-jwt-signing"), time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "garbage token",
			token: "not-a-jwt-token",
		},
		{
			name:  "malformed JWT",
			token: "header.payload.signature",
		},
		{
			name: "wrong secret",
			token: func() string {
				other := NewSigner([]byte("different-secret"), time.Hour)
				token, _ := other.Issue("user-123")
				return token
			}(),
		},
		{
			name: "altered signature",
			token: func() string {
				token, _ := signer.Issue("user-123")
				parts := strings.Split(token, ".")
				parts[2] = parts[2][:len(parts[2])-2] + "xx"
				return strings.Join(parts, ".")
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := signer.Verify(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestSigner_ExpiredToken(t *testing.T) {
	signer := NewSigner([]byte("test-secret-key-for-jwt-signing"), -time.Minute)

	token, err := signer.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// Expiry collapses into the same error as tampering.
	_, err = signer.Verify(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

func TestSigner_EmptySubject(t *testing.T) {
	signer := NewSigner([]byte("test-secret-key-for-jwt-signing"), time.Hour)

	token, err := signer.Issue("")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	_, err = signer.Verify(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken for empty subject", err)
	}
}
