// Package definition implements the definition repository using
// PostgreSQL. Definitions are append-only: regeneration inserts a new
// row and never mutates old ones, so the provider audit trail survives.
package definition

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/mydutch-backend/internal/adapter/postgres"
	"github.com/heartmarshall/mydutch-backend/internal/domain"
)

// Repo provides definition persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new definition repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const definitionColumns = "id, word_id, definition, example, english_translation, categories, provider_raw, created_at"

// Add inserts a definition row for a word. It always inserts: a second
// Add for the same word produces a second row, newest-wins on read.
func (r *Repo) Add(ctx context.Context, d *domain.Definition) (*domain.Definition, error) {
	if d == nil {
		return nil, fmt.Errorf("definition: nil definition: %w", domain.ErrValidation)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Insert("definitions").
		Columns("id", "word_id", "definition", "example", "english_translation", "categories", "provider_raw", "created_at").
		Values(uuid.New(), d.WordID, d.Definition, d.Example, d.EnglishTranslation, d.Categories, d.ProviderRaw, time.Now().UTC().Truncate(time.Microsecond)).
		Suffix("RETURNING " + definitionColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build add definition: %w", err)
	}

	def, err := scanDefinition(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "definition", d.WordID.String())
	}

	return &def, nil
}

// GetNewestByWordID returns the most recently added definition for a
// word. Returns domain.ErrNotFound if the word has no definitions.
func (r *Repo) GetNewestByWordID(ctx context.Context, wordID uuid.UUID) (*domain.Definition, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Select(definitionColumns).
		From("definitions").
		Where(squirrel.Eq{"word_id": wordID}).
		OrderBy("created_at DESC", "id").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get newest definition: %w", err)
	}

	def, err := scanDefinition(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "definition", wordID.String())
	}

	return &def, nil
}

// ListByWordID returns every definition stored for a word, newest first.
func (r *Repo) ListByWordID(ctx context.Context, wordID uuid.UUID) ([]domain.Definition, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Select(definitionColumns).
		From("definitions").
		Where(squirrel.Eq{"word_id": wordID}).
		OrderBy("created_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list definitions: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list definitions: %w", err)
	}
	defer rows.Close()

	defs, err := scanDefinitions(rows)
	if err != nil {
		return nil, fmt.Errorf("list definitions: %w", err)
	}

	return defs, nil
}

// LemmasWithDefinitions returns, from the given lemmas, the ones that
// already have at least one stored definition for the language. Used to
// skip provider calls for lemmas enriched earlier.
func (r *Repo) LemmasWithDefinitions(ctx context.Context, lemmas []string, language domain.Language) ([]string, error) {
	if len(lemmas) == 0 {
		return []string{}, nil
	}

	normalized := make([]string, 0, len(lemmas))
	for _, lemma := range lemmas {
		if norm := domain.NormalizeLemma(lemma); norm != "" {
			normalized = append(normalized, norm)
		}
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Select("DISTINCT w.lemma").
		From("words w").
		Join("definitions d ON d.word_id = w.id").
		Where(squirrel.Eq{"w.lemma": normalized, "w.language": string(language)}).
		OrderBy("w.lemma").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lemmas with definitions: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("lemmas with definitions: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var lemma string
		if err := rows.Scan(&lemma); err != nil {
			return nil, fmt.Errorf("lemmas with definitions: %w", err)
		}
		out = append(out, lemma)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("lemmas with definitions: %w", err)
	}

	return out, nil
}

func scanDefinition(row pgx.Row) (domain.Definition, error) {
	var d domain.Definition
	if err := row.Scan(&d.ID, &d.WordID, &d.Definition, &d.Example, &d.EnglishTranslation, &d.Categories, &d.ProviderRaw, &d.CreatedAt); err != nil {
		return domain.Definition{}, err
	}
	return d, nil
}

func scanDefinitions(rows pgx.Rows) ([]domain.Definition, error) {
	defs := []domain.Definition{}
	for rows.Next() {
		d, err := scanDefinition(rows)
		if err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return defs, nil
}
