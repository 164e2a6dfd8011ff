package definition_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/mydutch-backend/internal/adapter/postgres/definition"
	"github.com/heartmarshall/mydutch-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/mydutch-backend/internal/domain"
)

// newRepo is a test helper that sets up the DB and returns a ready Repo.
func newRepo(t *testing.T) (*definition.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return definition.New(pool), pool
}

func TestRepo_Add_HappyPath(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedWord(t, pool, "")

	got, err := repo.Add(ctx, &domain.Definition{
		WordID:             seeded.ID,
		Definition:         "A two-wheeled vehicle.",
		Example:            "Ik ga met de fiets naar werk.",
		EnglishTranslation: "I go to work by bike.",
		Categories:         []string{"transportation", "sports"},
		ProviderRaw:        `{"definitions":[]}`,
	})
	if err != nil {
		t.Fatalf("Add: unexpected error: %v", err)
	}

	if got.ID == uuid.Nil {
		t.Error("expected a generated ID")
	}
	if got.WordID != seeded.ID {
		t.Errorf("WordID mismatch: got %s, want %s", got.WordID, seeded.ID)
	}
	if !reflect.DeepEqual(got.Categories, []string{"transportation", "sports"}) {
		t.Errorf("Categories mismatch: got %v", got.Categories)
	}
}

func TestRepo_Add_AlwaysInserts(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedWord(t, pool, "")

	for i := 0; i < 2; i++ {
		_, err := repo.Add(ctx, &domain.Definition{
			WordID:             seeded.ID,
			Definition:         "Definition",
			Example:            "Voorbeeld",
			EnglishTranslation: "Example",
			Categories:         []string{"test"},
		})
		if err != nil {
			t.Fatalf("Add %d: %v", i, err)
		}
	}

	defs, err := repo.ListByWordID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("ListByWordID: %v", err)
	}
	if len(defs) != 2 {
		t.Errorf("expected 2 definition rows, got %d", len(defs))
	}
}

func TestRepo_Add_UnknownWord(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, &domain.Definition{
		WordID:             uuid.New(),
		Definition:         "Definition",
		Example:            "Voorbeeld",
		EnglishTranslation: "Example",
		Categories:         []string{"test"},
	})
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_GetNewestByWordID(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedWord(t, pool, "")
	testhelper.SeedDefinition(t, pool, seeded.ID)

	newest, err := repo.Add(ctx, &domain.Definition{
		WordID:             seeded.ID,
		Definition:         "Newer definition",
		Example:            "Nieuwere zin",
		EnglishTranslation: "Newer sentence",
		Categories:         []string{"test"},
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	got, err := repo.GetNewestByWordID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("GetNewestByWordID: unexpected error: %v", err)
	}

	if got.ID != newest.ID {
		t.Errorf("expected newest definition %s, got %s", newest.ID, got.ID)
	}
}

func TestRepo_GetNewestByWordID_NotFound(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedWord(t, pool, "")

	_, err := repo.GetNewestByWordID(ctx, seeded.ID)
	assertIsDomainError(t, err, domain.ErrNotFound)
}

func TestRepo_ListByWordID_Empty(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedWord(t, pool, "")

	defs, err := repo.ListByWordID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("ListByWordID: unexpected error: %v", err)
	}
	if len(defs) != 0 {
		t.Errorf("expected no definitions, got %d", len(defs))
	}
}

func TestRepo_LemmasWithDefinitions(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	defined := testhelper.SeedWord(t, pool, "")
	testhelper.SeedDefinition(t, pool, defined.ID)
	bare := testhelper.SeedWord(t, pool, "")

	got, err := repo.LemmasWithDefinitions(ctx, []string{defined.Lemma, bare.Lemma, "nooitgezien"}, domain.LanguageDutch)
	if err != nil {
		t.Fatalf("LemmasWithDefinitions: unexpected error: %v", err)
	}

	if len(got) != 1 || got[0] != defined.Lemma {
		t.Errorf("expected [%q], got %v", defined.Lemma, got)
	}
}

func TestRepo_LemmasWithDefinitions_Empty(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	got, err := repo.LemmasWithDefinitions(ctx, nil, domain.LanguageDutch)
	if err != nil {
		t.Fatalf("LemmasWithDefinitions: unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
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
