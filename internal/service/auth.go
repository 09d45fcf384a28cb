// Package service provides the business logic for accounts and workouts,
// delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/atinyakov/WorkoutTracker/internal/common"
	"github.com/atinyakov/WorkoutTracker/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository defines the persistence operations
// required by the authentication service.
type UserRepository interface {
	// UserExists returns true if a user with the given email exists.
	UserExists(ctx context.Context, email string) (bool, error)
	// CreateUser stores a new user. A duplicate email yields common.ErrConflict.
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByEmail returns common.ErrNotFound for unknown emails.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// TokenIssuer signs bearer tokens for a user id.
type TokenIssuer interface {
	GenerateToken(userID string) (string, error)
}

// AuthService implements signup and login.
type AuthService struct {
	repo     UserRepository
	tokens   TokenIssuer
	hashCost int
}

// NewAuthService constructs an AuthService using the provided repository and token issuer.
func NewAuthService(repo UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, hashCost: bcrypt.DefaultCost}
}

// Signup registers a new user and returns it together with a fresh token.
func (s *AuthService) Signup(ctx context.Context, email, password string) (*models.User, string, error) {
	email = normalizeEmail(email)
	if err := requireCredentials(email, password); err != nil {
		return nil, "", err
	}
	if !validEmail(email) {
		return nil, "", common.NewValidationError("email not valid")
	}
	if !strongPassword(password) {
		return nil, "", common.NewValidationError("password not strong enough")
	}

	exists, err := s.repo.UserExists(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", common.ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login checks the credentials and returns the user with a fresh token.
// Unknown emails and wrong passwords both yield common.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = normalizeEmail(email)
	if err := requireCredentials(email, password); err != nil {
		return nil, "", err
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.ErrUnauthorized
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", common.ErrUnauthorized
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func requireCredentials(email, password string) error {
	var empty []string
	if email == "" {
		empty = append(empty, "email")
	}
	if password == "" {
		empty = append(empty, "password")
	}
	if len(empty) > 0 {
		return common.NewValidationError("all fields must be filled", empty...)
	}
	return nil
}

// validEmail accepts a bare address only, no display name.
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}
