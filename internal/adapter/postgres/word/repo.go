// Package word implements the word repository using PostgreSQL.
// Words are keyed naturally by (lemma, language); lemmas are stored
// normalized so lookups never depend on caller casing.
package word

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

// Repo provides word persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new word repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const wordColumns = "id, lemma, language, created_at"

// Ensure returns the word for (lemma, language), creating it when it
// does not exist yet. Concurrent calls for the same lemma converge on
// one row; the upsert makes RETURNING yield the row in both cases.
func (r *Repo) Ensure(ctx context.Context, lemma string, language domain.Language) (*domain.Word, error) {
	norm := domain.NormalizeLemma(lemma)
	if norm == "" {
		return nil, fmt.Errorf("word: empty lemma: %w", domain.ErrValidation)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Insert("words").
		Columns("id", "lemma", "language", "created_at").
		Values(uuid.New(), norm, string(language), time.Now().UTC().Truncate(time.Microsecond)).
		Suffix("ON CONFLICT (lemma, language) DO UPDATE SET lemma = EXCLUDED.lemma").
		Suffix("RETURNING " + wordColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ensure word: %w", err)
	}

	word, err := scanWord(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "word", norm)
	}

	return &word, nil
}

// GetByLemma returns the word for (lemma, language).
// Returns domain.ErrNotFound if no such word is stored.
func (r *Repo) GetByLemma(ctx context.Context, lemma string, language domain.Language) (*domain.Word, error) {
	norm := domain.NormalizeLemma(lemma)

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Select(wordColumns).
		From("words").
		Where(squirrel.Eq{"lemma": norm, "language": string(language)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get word by lemma: %w", err)
	}

	word, err := scanWord(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "word", norm)
	}

	return &word, nil
}

// GetByID returns a word by its surrogate ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Select(wordColumns).
		From("words").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get word by id: %w", err)
	}

	word, err := scanWord(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "word", id.String())
	}

	return &word, nil
}

// ListByLemmas returns the stored words among the given lemmas for one
// language. Lemmas without a stored word are simply absent from the
// result; the order follows lemma ascending.
func (r *Repo) ListByLemmas(ctx context.Context, lemmas []string, language domain.Language) ([]domain.Word, error) {
	if len(lemmas) == 0 {
		return []domain.Word{}, nil
	}

	normalized := make([]string, 0, len(lemmas))
	for _, lemma := range lemmas {
		if norm := domain.NormalizeLemma(lemma); norm != "" {
			normalized = append(normalized, norm)
		}
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Select(wordColumns).
		From("words").
		Where(squirrel.Eq{"lemma": normalized, "language": string(language)}).
		OrderBy("lemma").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list words by lemmas: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list words by lemmas: %w", err)
	}
	defer rows.Close()

	words, err := scanWords(rows)
	if err != nil {
		return nil, fmt.Errorf("list words by lemmas: %w", err)
	}

	return words, nil
}

func scanWord(row pgx.Row) (domain.Word, error) {
	var (
		w        domain.Word
		language string
	)
	if err := row.Scan(&w.ID, &w.Lemma, &language, &w.CreatedAt); err != nil {
		return domain.Word{}, err
	}
	w.Language = domain.Language(language)
	return w, nil
}

func scanWords(rows pgx.Rows) ([]domain.Word, error) {
	words := []domain.Word{}
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
