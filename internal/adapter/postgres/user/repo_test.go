package user_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/mydutch-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/mydutch-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/mydutch-backend/internal/domain"
)

// newRepo is a test helper that sets up the DB and returns a ready Repo.
func newRepo(t *testing.T) (*user.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return user.New(pool), pool
}

func uniqueEmail(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8] + "@example.com"
}

func TestRepo_Create_HappyPath(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	email := uniqueEmail("create-happy")

	got, err := repo.Create(ctx, email, "$2a$10$hash")
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if got.Email != email {
		t.Errorf("Email mismatch: got %q, want %q", got.Email, email)
	}
	if got.PasswordHash != "$2a$10$hash" {
		t.Errorf("PasswordHash mismatch: got %q", got.PasswordHash)
	}
	if got.ID == uuid.Nil {
		t.Error("expected a generated ID")
	}
}

func TestRepo_Create_LowercasesEmail(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	email := uniqueEmail("mixed-case")

	got, err := repo.Create(ctx, "  "+strings.ToUpper(email)+" ", "hash")
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if got.Email != email {
		t.Errorf("email not lowercased: got %q, want %q", got.Email, email)
	}
}

func TestRepo_Create_DuplicateEmail(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	email := uniqueEmail("dup")

	if _, err := repo.Create(ctx, email, "hash1"); err != nil {
		t.Fatalf("Create first: %v", err)
	}

	_, err := repo.Create(ctx, email, "hash2")
	assertIsDomainError(t, err, domain.ErrAlreadyExists)
}

func TestRepo_Create_EmptyEmail(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "   ", "hash")
	assertIsDomainError(t, err, domain.ErrValidation)
}

func TestRepo_GetByEmail_HappyPath(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedUser(t, pool)

	got, err := repo.GetByEmail(ctx, strings.ToUpper(seeded.Email))
	if err != nil {
		t.Fatalf("GetByEmail: unexpected error: %v", err)
	}
	if got.ID != seeded.ID {
		t.Errorf("ID mismatch: got %s, want %s", got.ID, seeded.ID)
	}
}

func TestRepo_GetByEmail_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	_, err := repo.GetByEmail(ctx, uniqueEmail("nonexistent"))
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_GetByID_HappyPath(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedUser(t, pool)

	got, err := repo.GetByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if got.Email != seeded.Email {
		t.Errorf("Email mismatch: got %q, want %q", got.Email, seeded.Email)
	}
}

func TestRepo_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func assertIsDomainError(t *testing.T, err error, target error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error wrapping %v, got nil", target)
	}
	if !errors.Is(err, target) {
		t.Fatalf("expected error wrapping %v, got: %v", target, err)
	}
}
