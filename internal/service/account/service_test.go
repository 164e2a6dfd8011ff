package account

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/mydutch-backend/internal/domain"
)

type mockUserRepo struct {
	createFn     func(ctx context.Context, email, passwordHash string) (*domain.User, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	return m.createFn(ctx, email, passwordHash)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.getByEmailFn(ctx, email)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.getByIDFn(ctx, id)
}

func TestService_Register_HashesPassword(t *testing.T) {
	t.Parallel()

	var storedHash string
	repo := &mockUserRepo{
		createFn: func(_ context.Context, email, passwordHash string) (*domain.User, error) {
			storedHash = passwordHash
			return &domain.User{ID: uuid.New(), Email: email, PasswordHash: passwordHash}, nil
		},
	}

	svc := NewService(slog.Default(), repo)
	_, err := svc.Register(context.Background(), "user@example.com", "geheim-wachtwoord")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if storedHash == "geheim-wachtwoord" {
		t.Fatal("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("geheim-wachtwoord")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestService_Register_NormalizesEmail(t *testing.T) {
	t.Parallel()

	var storedEmail string
	repo := &mockUserRepo{
		createFn: func(_ context.Context, email, passwordHash string) (*domain.User, error) {
			storedEmail = email
			return &domain.User{ID: uuid.New(), Email: email}, nil
		},
	}

	svc := NewService(slog.Default(), repo)
	if _, err := svc.Register(context.Background(), "  User@Example.COM ", "geheim-wachtwoord"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if storedEmail != "user@example.com" {
		t.Errorf("email not normalized: %q", storedEmail)
	}
}

func TestService_Register_Validation(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepo{
		createFn: func(context.Context, string, string) (*domain.User, error) {
			t.Error("Create must not be called for invalid input")
			return nil, nil
		},
	}
	svc := NewService(slog.Default(), repo)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "geheim-wachtwoord"},
		{"no at sign", "not-an-email", "geheim-wachtwoord"},
		{"short password", "user@example.com", "kort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.Register(context.Background(), tt.email, tt.password)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got: %v", err)
			}
		})
	}
}

func TestService_Authenticate_HappyPath(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("geheim-wachtwoord"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	userID := uuid.New()
	repo := &mockUserRepo{
		getByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: userID, Email: email, PasswordHash: string(hash)}, nil
		},
	}

	svc := NewService(slog.Default(), repo)
	user, err := svc.Authenticate(context.Background(), "user@example.com", "geheim-wachtwoord")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.ID != userID {
		t.Errorf("ID mismatch: got %s, want %s", user.ID, userID)
	}
}

func TestService_Authenticate_WrongPassword(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("geheim-wachtwoord"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	repo := &mockUserRepo{
		getByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: uuid.New(), Email: email, PasswordHash: string(hash)}, nil
		},
	}

	svc := NewService(slog.Default(), repo)
	_, err = svc.Authenticate(context.Background(), "user@example.com", "fout-wachtwoord")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestService_Authenticate_UnknownEmail(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepo{
		getByEmailFn: func(context.Context, string) (*domain.User, error) {
			return nil, domain.ErrNotFound
		},
	}

	svc := NewService(slog.Default(), repo)
	_, err := svc.Authenticate(context.Background(), "nobody@example.com", "whatever-password")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestService_Authenticate_RepoErrorPassesThrough(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("db down")
	repo := &mockUserRepo{
		getByEmailFn: func(context.Context, string) (*domain.User, error) {
			return nil, sentinel
		},
	}

	svc := NewService(slog.Default(), repo)
	_, err := svc.Authenticate(context.Background(), "user@example.com", "geheim-wachtwoord")
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected repo error to pass through, got: %v", err)
	}
}
