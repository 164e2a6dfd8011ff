// Package account provides user registration and password checks.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/mydutch-backend/internal/domain"
)

// ErrInvalidCredentials is returned when the email or password does not
// match a stored account. It deliberately does not distinguish the two.
var ErrInvalidCredentials = errors.New("invalid credentials")

const minPasswordLength = 8

type userRepo interface {
	Create(ctx context.Context, email, passwordHash string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// Service wraps the user repository with credential handling.
type Service struct {
	log   *slog.Logger
	users userRepo
}

// NewService creates a new account service.
func NewService(log *slog.Logger, users userRepo) *Service {
	return &Service{
		log:   log.With("service", "account"),
		users: users,
	}
}

// Register creates an account with a bcrypt-hashed password.
// Returns domain.ErrAlreadyExists when the email is taken.
func (s *Service) Register(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("account: invalid email: %w", domain.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("account: password must be at least %d characters: %w", minPasswordLength, domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, email, string(hash))
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "registered user", slog.String("user_id", user.ID.String()))
	return user, nil
}

// Authenticate verifies an email/password pair and returns the account.
// Wrong email and wrong password both map to ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Get returns an account by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetByEmail returns an account by email.
func (s *Service) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, email)
}
