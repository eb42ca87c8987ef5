// ABOUTME: JWT credential issuing and verification for tasknest users
// ABOUTME: Uses HS256 signing with a process-wide secret and fixed validity window

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Credential errors. Expired, tampered, and malformed tokens all collapse to
// ErrInvalidToken: callers (and clients) must not be able to tell which case
// occurred.
var (
	ErrMissingToken = errors.New("missing credential")
	ErrInvalidToken = errors.New("invalid or expired credential")
)

// Verifier validates a presented credential and returns the subject identity.
type Verifier interface {
	Verify(tokenString string) (identity string, err error)
}

// Signer issues and verifies HS256-signed credentials. It is stateless: the
// only inputs are the secret and TTL fixed at construction.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

// NewSigner creates a Signer with the given secret and validity window.
func NewSigner(secret []byte, ttl time.Duration) *Signer {
	return &Signer{secret: secret, ttl: ttl}
}

// Issue creates a signed credential asserting the given identity, valid from
// now until now+ttl.
func (s *Signer) Issue(identity string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": identity,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates the token signature and expiry and extracts the identity
// from the "sub" claim. Any failure, including expiry, returns ErrInvalidToken.
func (s *Signer) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}

	if !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrInvalidToken
	}

	return sub, nil
}
