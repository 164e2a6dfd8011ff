// Package knownword implements the per-user known-word list using
// PostgreSQL. Membership is a plain (user_id, word_id) link table;
// adding an existing member is a no-op rather than an error.
package knownword

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/mydutch-backend/internal/adapter/postgres"
	"github.com/heartmarshall/mydutch-backend/internal/domain"
)

// Repo provides known-word persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new known-word repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Add marks a word as known for a user. Idempotent: marking an already
// known word changes nothing and returns nil.
func (r *Repo) Add(ctx context.Context, userID, wordID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Insert("user_known_words").
		Columns("user_id", "word_id", "created_at").
		Values(userID, wordID, time.Now().UTC().Truncate(time.Microsecond)).
		Suffix("ON CONFLICT (user_id, word_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build add known word: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "known word", wordID.String())
	}

	return nil
}

// Remove unmarks a word as known for a user.
// Returns domain.ErrNotFound if the word was not marked known.
func (r *Repo) Remove(ctx context.Context, userID, wordID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Delete("user_known_words").
		Where(squirrel.Eq{"user_id": userID, "word_id": wordID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build remove known word: %w", err)
	}

	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "known word", wordID.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("known word %s: %w", wordID, domain.ErrNotFound)
	}

	return nil
}

// ListLemmas returns the lemmas of every word a user knows for one
// language, sorted ascending. The extraction pipeline feeds these into
// its known-word filter.
func (r *Repo) ListLemmas(ctx context.Context, userID uuid.UUID, language domain.Language) ([]string, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Select("w.lemma").
		From("user_known_words kw").
		Join("words w ON w.id = kw.word_id").
		Where(squirrel.Eq{"kw.user_id": userID, "w.language": string(language)}).
		OrderBy("w.lemma").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list known lemmas: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list known lemmas: %w", err)
	}
	defer rows.Close()

	lemmas := []string{}
	for rows.Next() {
		var lemma string
		if err := rows.Scan(&lemma); err != nil {
			return nil, fmt.Errorf("list known lemmas: %w", err)
		}
		lemmas = append(lemmas, lemma)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list known lemmas: %w", err)
	}

	return lemmas, nil
}

// Count returns how many words a user has marked known.
func (r *Repo) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := postgres.Builder().
		Select("COUNT(*)").
		From("user_known_words").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count known words: %w", err)
	}

	var count int
	if err := querier.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count known words: %w", err)
	}

	return count, nil
}
