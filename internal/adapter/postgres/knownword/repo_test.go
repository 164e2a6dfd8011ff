package knownword_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/mydutch-backend/internal/adapter/postgres/knownword"
	"github.com/heartmarshall/mydutch-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/mydutch-backend/internal/domain"
)

// newRepo is a test helper that sets up the DB and returns a ready Repo.
func newRepo(t *testing.T) (*knownword.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return knownword.New(pool), pool
}

func TestRepo_Add_HappyPath(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	word := testhelper.SeedWord(t, pool, "")

	if err := repo.Add(ctx, user.ID, word.ID); err != nil {
		t.Fatalf("Add: unexpected error: %v", err)
	}

	count, err := repo.Count(ctx, user.ID)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}
}

func TestRepo_Add_IsIdempotent(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	word := testhelper.SeedWord(t, pool, "")

	for i := 0; i < 2; i++ {
		if err := repo.Add(ctx, user.ID, word.ID); err != nil {
			t.Fatalf("Add %d: %v", i, err)
		}
	}

	count, err := repo.Count(ctx, user.ID)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected count 1 after duplicate add, got %d", count)
	}
}

func TestRepo_Add_UnknownWord(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)

	err := repo.Add(ctx, user.ID, uuid.New())
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_Remove_HappyPath(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	word := testhelper.SeedWord(t, pool, "")

	if err := repo.Add(ctx, user.ID, word.ID); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := repo.Remove(ctx, user.ID, word.ID); err != nil {
		t.Fatalf("Remove: unexpected error: %v", err)
	}

	count, err := repo.Count(ctx, user.ID)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Errorf("expected count 0 after remove, got %d", count)
	}
}

func TestRepo_Remove_NotFound(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)

	err := repo.Remove(ctx, user.ID, uuid.New())
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_ListLemmas(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	other := testhelper.SeedUser(t, pool)
	w1 := testhelper.SeedWord(t, pool, "")
	w2 := testhelper.SeedWord(t, pool, "")
	w3 := testhelper.SeedWord(t, pool, "")

	for _, w := range []uuid.UUID{w1.ID, w2.ID} {
		if err := repo.Add(ctx, user.ID, w); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	// A different user's known word must not leak into the list.
	if err := repo.Add(ctx, other.ID, w3.ID); err != nil {
		t.Fatalf("Add other user: %v", err)
	}

	lemmas, err := repo.ListLemmas(ctx, user.ID, domain.LanguageDutch)
	if err != nil {
		t.Fatalf("ListLemmas: unexpected error: %v", err)
	}

	if len(lemmas) != 2 {
		t.Fatalf("expected 2 lemmas, got %d: %v", len(lemmas), lemmas)
	}
	found := map[string]bool{lemmas[0]: true, lemmas[1]: true}
	if !found[w1.Lemma] || !found[w2.Lemma] {
		t.Errorf("missing lemmas in result: %v", lemmas)
	}
}

func TestRepo_ListLemmas_Empty(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)

	lemmas, err := repo.ListLemmas(ctx, user.ID, domain.LanguageDutch)
	if err != nil {
		t.Fatalf("ListLemmas: unexpected error: %v", err)
	}
	if len(lemmas) != 0 {
		t.Errorf("expected empty list, got %v", lemmas)
	}
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
