package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/mydutch-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with a unique email. Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Email:        "testuser-" + suffix + "@example.com",
		PasswordHash: "$2a$10$" + suffix, // opaque to the schema
		CreatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, created_at)
		 VALUES ($1, $2, $3, $4)`,
		user.ID, user.Email, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedWord creates a Dutch word with a unique lemma unless one is given.
// Returns a filled domain.Word.
func SeedWord(t *testing.T, pool *pgxpool.Pool, lemma string) domain.Word {
	t.Helper()
	ctx := context.Background()

	if lemma == "" {
		lemma = "woord" + uniqueSuffix()
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	word := domain.Word{
		ID:        uuid.New(),
		Lemma:     domain.NormalizeLemma(lemma),
		Language:  domain.LanguageDutch,
		CreatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO words (id, lemma, language, created_at)
		 VALUES ($1, $2, $3, $4)`,
		word.ID, word.Lemma, string(word.Language), word.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedWord insert word: %v", err)
	}

	return word
}

// SeedDefinition creates a definition row for a word.
// Returns a filled domain.Definition.
func SeedDefinition(t *testing.T, pool *pgxpool.Pool, wordID uuid.UUID) domain.Definition {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	def := domain.Definition{
		ID:                 uuid.New(),
		WordID:             wordID,
		Definition:         "Definition " + suffix,
		Example:            "Voorbeeldzin " + suffix,
		EnglishTranslation: "Example sentence " + suffix,
		Categories:         []string{"test"},
		ProviderRaw:        `{"seed":"` + suffix + `"}`,
		CreatedAt:          now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO definitions (id, word_id, definition, example, english_translation, categories, provider_raw, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		def.ID, def.WordID, def.Definition, def.Example, def.EnglishTranslation, def.Categories, def.ProviderRaw, def.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDefinition insert definition: %v", err)
	}

	return def
}

// SeedDeck creates a deck for a user with a unique name.
// Returns a filled domain.Deck.
func SeedDeck(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) domain.Deck {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	deck := domain.Deck{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        "Deck " + suffix,
		Description: "Seeded deck " + suffix,
		CreatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO decks (id, user_id, name, description, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		deck.ID, deck.UserID, deck.Name, deck.Description, deck.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDeck insert deck: %v", err)
	}

	return deck
}
