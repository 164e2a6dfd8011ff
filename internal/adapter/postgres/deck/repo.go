// Package deck implements the deck repository using PostgreSQL.
// A deck is a user-owned word collection; listing deck words resolves
// each word's newest definition with a DISTINCT ON lateral-free join.
package deck

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/mydutch-backend/internal/adapter/postgres"
	"github.com/heartmarshall/mydutch-backend/internal/domain"
)

// Repo provides deck persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new deck repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const deckColumns = "id, user_id, name, description, created_at"

// listWordsSQL resolves every word of a deck together with its newest
// definition. DISTINCT ON (w.id) with created_at DESC picks exactly one
// definition row per word; words without definitions keep NULLs via the
// LEFT JOIN.
const listWordsSQL = `
SELECT DISTINCT ON (w.id)
    w.id, w.lemma, w.language, w.created_at,
    d.id, d.definition, d.example, d.english_translation, d.categories, d.provider_raw, d.created_at
FROM deck_words dw
JOIN words w ON w.id = dw.word_id
LEFT JOIN definitions d ON d.word_id = w.id
WHERE dw.deck_id = $1
ORDER BY w.id, d.created_at DESC`

// Create inserts a deck for a user. Deck names are unique per user;
// re-creating a name returns domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, userID uuid.UUID, name, description string) (*domain.Deck, error) {
	if name == "" {
		return nil, fmt.Errorf("deck: empty name: %w", domain.ErrValidation)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Insert("decks").
		Columns("id", "user_id", "name", "description", "created_at").
		Values(uuid.New(), userID, name, description, time.Now().UTC().Truncate(time.Microsecond)).
		Suffix("RETURNING " + deckColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create deck: %w", err)
	}

	deck, err := scanDeck(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "deck", name)
	}

	return &deck, nil
}

// GetByID returns a deck by ID.
func (r *Repo) GetByID(ctx context.Context, deckID uuid.UUID) (*domain.Deck, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Select(deckColumns).
		From("decks").
		Where(squirrel.Eq{"id": deckID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get deck: %w", err)
	}

	deck, err := scanDeck(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "deck", deckID.String())
	}

	return &deck, nil
}

// ListByUser returns a user's decks, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Deck, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Select(deckColumns).
		From("decks").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list decks: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list decks: %w", err)
	}
	defer rows.Close()

	decks := []domain.Deck{}
	for rows.Next() {
		d, err := scanDeck(rows)
		if err != nil {
			return nil, fmt.Errorf("list decks: %w", err)
		}
		decks = append(decks, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list decks: %w", err)
	}

	return decks, nil
}

// AddWord links a word to a deck. Idempotent on repeated adds.
// Returns domain.ErrNotFound if the deck or the word does not exist.
func (r *Repo) AddWord(ctx context.Context, deckID, wordID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Insert("deck_words").
		Columns("deck_id", "word_id", "added_at").
		Values(deckID, wordID, time.Now().UTC().Truncate(time.Microsecond)).
		Suffix("ON CONFLICT (deck_id, word_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build add deck word: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "deck word", wordID.String())
	}

	return nil
}

// ListWords returns every word in a deck with its newest definition.
// Words enriched more than once surface only the latest definition.
func (r *Repo) ListWords(ctx context.Context, deckID uuid.UUID) ([]domain.WordWithDefinition, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listWordsSQL, deckID)
	if err != nil {
		return nil, fmt.Errorf("list deck words: %w", err)
	}
	defer rows.Close()

	out := []domain.WordWithDefinition{}
	for rows.Next() {
		wd, err := scanWordWithDefinition(rows)
		if err != nil {
			return nil, fmt.Errorf("list deck words: %w", err)
		}
		out = append(out, wd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list deck words: %w", err)
	}

	return out, nil
}

// WordCount returns the number of words in a deck.
func (r *Repo) WordCount(ctx context.Context, deckID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Select("COUNT(*)").
		From("deck_words").
		Where(squirrel.Eq{"deck_id": deckID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count deck words: %w", err)
	}

	var count int
	if err := querier.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count deck words: %w", err)
	}

	return count, nil
}

// Delete removes a deck and, via ON DELETE CASCADE, its word links.
// Returns domain.ErrNotFound if 0 rows affected.
func (r *Repo) Delete(ctx context.Context, deckID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Delete("decks").
		Where(squirrel.Eq{"id": deckID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete deck: %w", err)
	}

	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "deck", deckID.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deck %s: %w", deckID, domain.ErrNotFound)
	}

	return nil
}

func scanDeck(row pgx.Row) (domain.Deck, error) {
	var d domain.Deck
	if err := row.Scan(&d.ID, &d.UserID, &d.Name, &d.Description, &d.CreatedAt); err != nil {
		return domain.Deck{}, err
	}
	return d, nil
}

func scanWordWithDefinition(rows pgx.Rows) (domain.WordWithDefinition, error) {
	var (
		wd       domain.WordWithDefinition
		language string

		defID        pgtype.UUID
		definition   pgtype.Text
		example      pgtype.Text
		translation  pgtype.Text
		categories   []string
		providerRaw  pgtype.Text
		defCreatedAt pgtype.Timestamptz
	)

	err := rows.Scan(
		&wd.Word.ID, &wd.Word.Lemma, &language, &wd.Word.CreatedAt,
		&defID, &definition, &example, &translation, &categories, &providerRaw, &defCreatedAt,
	)
	if err != nil {
		return domain.WordWithDefinition{}, err
	}
	wd.Word.Language = domain.Language(language)

	if defID.Valid {
		wd.Definition = &domain.Definition{
			ID:                 uuid.UUID(defID.Bytes),
			WordID:             wd.Word.ID,
			Definition:         definition.String,
			Example:            example.String,
			EnglishTranslation: translation.String,
			Categories:         categories,
			ProviderRaw:        providerRaw.String,
			CreatedAt:          defCreatedAt.Time,
		}
	}

	return wd, nil
}
