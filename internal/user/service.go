// ABOUTME: User registration and login with bcrypt password hashing
// ABOUTME: Issues a credential on successful register/login

package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/tasknest/tasknest/internal/auth"
	"github.com/tasknest/tasknest/internal/store"
)

// ErrValidation is returned when registration input is missing or malformed.
var ErrValidation = errors.New("validation failed")

// ErrInvalidLogin is returned for both unknown email and wrong password.
// The two cases are deliberately collapsed.
var ErrInvalidLogin = errors.New("invalid email or password")

const minPasswordLength = 8

// Service handles account registration and login.
type Service struct {
	store  store.Store
	signer *auth.Signer
	logger *slog.Logger
}

// NewService creates a user service backed by the given store and signer.
func NewService(s store.Store, signer *auth.Signer) *Service {
	return &Service{
		store:  s,
		signer: signer,
		logger: slog.Default().With("component", "user"),
	}
}

// Register creates a new account and issues a credential for it.
func (s *Service) Register(ctx context.Context, email, name, password string) (*store.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", fmt.Errorf("%w: a valid email is required", ErrValidation)
	}
	if name == "" {
		return nil, "", fmt.Errorf("%w: name is required", ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	u := &store.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := s.signer.Issue(u.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issuing credential: %w", err)
	}

	s.logger.Info("user registered", "user_id", u.ID)
	return u, token, nil
}

// Login verifies the password for the given email and issues a credential.
// Unknown email and wrong password both return ErrInvalidLogin.
func (s *Service) Login(ctx context.Context, email, password string) (*store.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrInvalidLogin
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidLogin
	}

	token, err := s.signer.Issue(u.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issuing credential: %w", err)
	}

	s.logger.Info("user logged in", "user_id", u.ID)
	return u, token, nil
}
