// Package vocabulary orchestrates the extraction and enrichment
// pipeline: tagged text in, filtered lemma frequencies out, definitions
// generated for unknown lemmas and persisted word by word.
package vocabulary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/mydutch-backend/internal/domain"
)

type extractor interface {
	Extract(ctx context.Context, text string, knownWords []string) ([]domain.LemmaFrequency, error)
}

type definitionClient interface {
	GenerateDefinitions(ctx context.Context, lemmas []string) ([]domain.DefinitionRecord, error)
}

type wordRepo interface {
	Ensure(ctx context.Context, lemma string, language domain.Language) (*domain.Word, error)
}

type definitionRepo interface {
	Add(ctx context.Context, d *domain.Definition) (*domain.Definition, error)
	GetNewestByWordID(ctx context.Context, wordID uuid.UUID) (*domain.Definition, error)
	LemmasWithDefinitions(ctx context.Context, lemmas []string, language domain.Language) ([]string, error)
}

type knownWordRepo interface {
	Add(ctx context.Context, userID, wordID uuid.UUID) error
	Remove(ctx context.Context, userID, wordID uuid.UUID) error
	ListLemmas(ctx context.Context, userID uuid.UUID, language domain.Language) ([]string, error)
}

type deckRepo interface {
	Create(ctx context.Context, userID uuid.UUID, name, description string) (*domain.Deck, error)
	GetByID(ctx context.Context, deckID uuid.UUID) (*domain.Deck, error)
	AddWord(ctx context.Context, deckID, wordID uuid.UUID) error
	ListWords(ctx context.Context, deckID uuid.UUID) ([]domain.WordWithDefinition, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service wires the extractor, the definition provider, and the
// repositories into the vocabulary pipeline.
type Service struct {
	log        *slog.Logger
	extractor  extractor
	defClient  definitionClient
	words      wordRepo
	defs       definitionRepo
	known      knownWordRepo
	decks      deckRepo
	txm        txManager
	language   domain.Language
	deckPrefix string
}

// NewService creates a new vocabulary service. The language scopes
// every word lookup; deckPrefix names auto-created decks.
func NewService(
	log *slog.Logger,
	ext extractor,
	defClient definitionClient,
	words wordRepo,
	defs definitionRepo,
	known knownWordRepo,
	decks deckRepo,
	txm txManager,
	language domain.Language,
	deckPrefix string,
) *Service {
	if deckPrefix == "" {
		deckPrefix = "Woorden"
	}
	return &Service{
		log:        log.With("service", "vocabulary"),
		extractor:  ext,
		defClient:  defClient,
		words:      words,
		defs:       defs,
		known:      known,
		decks:      decks,
		txm:        txm,
		language:   language,
		deckPrefix: deckPrefix,
	}
}

// ProcessText extracts candidate vocabulary from text, excluding the
// user's stored known words on top of the structural filters.
func (s *Service) ProcessText(ctx context.Context, userID uuid.UUID, text string) ([]domain.LemmaFrequency, error) {
	knownLemmas, err := s.known.ListLemmas(ctx, userID, s.language)
	if err != nil {
		return nil, fmt.Errorf("list known words: %w", err)
	}

	frequencies, err := s.extractor.Extract(ctx, text, knownLemmas)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "processed text",
		slog.String("user_id", userID.String()),
		slog.Int("known_words", len(knownLemmas)),
		slog.Int("extracted", len(frequencies)),
	)

	return frequencies, nil
}

// EnrichAndSave generates and persists definitions for the given
// lemmas. Lemmas that already have a stored definition are not sent to
// the provider again; their newest stored definition is returned
// instead. When deckID is non-nil every word is also added to that
// deck, which must belong to userID.
//
// Results follow the first-seen order of the deduplicated input.
func (s *Service) EnrichAndSave(ctx context.Context, userID uuid.UUID, lemmas []string, deckID *uuid.UUID) ([]domain.WordWithDefinition, error) {
	deduped := dedupeLemmas(lemmas)
	if len(deduped) == 0 {
		return []domain.WordWithDefinition{}, nil
	}

	if deckID != nil {
		deck, err := s.decks.GetByID(ctx, *deckID)
		if err != nil {
			return nil, fmt.Errorf("resolve deck: %w", err)
		}
		if deck.UserID != userID {
			return nil, fmt.Errorf("deck %s: %w", deckID, domain.ErrNotFound)
		}
	}

	existing, err := s.defs.LemmasWithDefinitions(ctx, deduped, s.language)
	if err != nil {
		return nil, fmt.Errorf("check existing definitions: %w", err)
	}
	existingSet := make(map[string]struct{}, len(existing))
	for _, lemma := range existing {
		existingSet[lemma] = struct{}{}
	}

	missing := make([]string, 0, len(deduped))
	for _, lemma := range deduped {
		if _, ok := existingSet[lemma]; !ok {
			missing = append(missing, lemma)
		}
	}

	s.log.InfoContext(ctx, "enriching lemmas",
		slog.String("user_id", userID.String()),
		slog.Int("requested", len(deduped)),
		slog.Int("already_defined", len(existing)),
		slog.Int("to_generate", len(missing)),
	)

	records, err := s.defClient.GenerateDefinitions(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("generate definitions: %w", err)
	}
	recordsByLemma := make(map[string]domain.DefinitionRecord, len(records))
	for _, rec := range records {
		recordsByLemma[domain.NormalizeLemma(rec.Lemma)] = rec
	}

	results := make([]domain.WordWithDefinition, 0, len(deduped))
	for _, lemma := range deduped {
		wd, err := s.saveOne(ctx, lemma, existingSet, recordsByLemma)
		if err != nil {
			return nil, err
		}
		results = append(results, wd)
	}

	if deckID != nil {
		err := s.txm.RunInTx(ctx, func(txCtx context.Context) error {
			for _, wd := range results {
				if err := s.decks.AddWord(txCtx, *deckID, wd.Word.ID); err != nil {
					return fmt.Errorf("add word %q to deck: %w", wd.Word.Lemma, err)
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// ProcessTextWithAutoDeck runs the full pipeline on a text: extract,
// enrich, and collect the results into a freshly created deck named
// after the configured prefix and the current date. An empty extraction
// creates no deck.
func (s *Service) ProcessTextWithAutoDeck(ctx context.Context, userID uuid.UUID, text string) (*domain.Deck, []domain.WordWithDefinition, error) {
	frequencies, err := s.ProcessText(ctx, userID, text)
	if err != nil {
		return nil, nil, err
	}
	if len(frequencies) == 0 {
		return nil, []domain.WordWithDefinition{}, nil
	}

	lemmas := make([]string, 0, len(frequencies))
	for _, f := range frequencies {
		lemmas = append(lemmas, f.Lemma)
	}

	results, err := s.EnrichAndSave(ctx, userID, lemmas, nil)
	if err != nil {
		return nil, nil, err
	}

	name := fmt.Sprintf("%s %s", s.deckPrefix, time.Now().Format("2006-01-02 15:04"))

	var deck *domain.Deck
	err = s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		created, err := s.decks.Create(txCtx, userID, name, fmt.Sprintf("Auto-created from a text of %d words", len(results)))
		if err != nil {
			return fmt.Errorf("create deck: %w", err)
		}
		for _, wd := range results {
			if err := s.decks.AddWord(txCtx, created.ID, wd.Word.ID); err != nil {
				return fmt.Errorf("add word %q to deck: %w", wd.Word.Lemma, err)
			}
		}
		deck = created
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.log.InfoContext(ctx, "created auto deck",
		slog.String("user_id", userID.String()),
		slog.String("deck", deck.Name),
		slog.Int("words", len(results)),
	)

	return deck, results, nil
}

// MarkKnown records that the user already understands a lemma. The word
// row is created on demand so a lemma can be marked known before it was
// ever enriched.
func (s *Service) MarkKnown(ctx context.Context, userID uuid.UUID, lemma string) error {
	word, err := s.words.Ensure(ctx, lemma, s.language)
	if err != nil {
		return err
	}
	return s.known.Add(ctx, userID, word.ID)
}

// UnmarkKnown removes a lemma from the user's known words.
func (s *Service) UnmarkKnown(ctx context.Context, userID uuid.UUID, lemma string) error {
	word, err := s.words.Ensure(ctx, lemma, s.language)
	if err != nil {
		return err
	}
	return s.known.Remove(ctx, userID, word.ID)
}

// KnownLemmas lists the user's known lemmas for the service language.
func (s *Service) KnownLemmas(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return s.known.ListLemmas(ctx, userID, s.language)
}

// DeckWords lists a user's deck with each word's newest definition.
func (s *Service) DeckWords(ctx context.Context, userID, deckID uuid.UUID) ([]domain.WordWithDefinition, error) {
	deck, err := s.decks.GetByID(ctx, deckID)
	if err != nil {
		return nil, err
	}
	if deck.UserID != userID {
		return nil, fmt.Errorf("deck %s: %w", deckID, domain.ErrNotFound)
	}
	return s.decks.ListWords(ctx, deckID)
}

// saveOne persists one lemma: the word row is ensured, then either the
// freshly generated record is inserted or the newest stored definition
// is reused.
func (s *Service) saveOne(ctx context.Context, lemma string, existingSet map[string]struct{}, recordsByLemma map[string]domain.DefinitionRecord) (domain.WordWithDefinition, error) {
	word, err := s.words.Ensure(ctx, lemma, s.language)
	if err != nil {
		return domain.WordWithDefinition{}, fmt.Errorf("ensure word %q: %w", lemma, err)
	}

	if _, ok := existingSet[lemma]; ok {
		def, err := s.defs.GetNewestByWordID(ctx, word.ID)
		if err != nil {
			return domain.WordWithDefinition{}, fmt.Errorf("load definition for %q: %w", lemma, err)
		}
		return domain.WordWithDefinition{Word: *word, Definition: def}, nil
	}

	rec, ok := recordsByLemma[lemma]
	if !ok {
		return domain.WordWithDefinition{}, fmt.Errorf("no definition generated for %q: %w", lemma, domain.ErrProvider)
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return domain.WordWithDefinition{}, fmt.Errorf("marshal provider record for %q: %w", lemma, err)
	}

	def, err := s.defs.Add(ctx, &domain.Definition{
		WordID:             word.ID,
		Definition:         rec.Definition,
		Example:            rec.Example,
		EnglishTranslation: rec.EnglishTranslation,
		Categories:         rec.Categories,
		ProviderRaw:        string(raw),
	})
	if err != nil {
		return domain.WordWithDefinition{}, fmt.Errorf("save definition for %q: %w", lemma, err)
	}

	return domain.WordWithDefinition{Word: *word, Definition: def}, nil
}

// dedupeLemmas normalizes lemmas and removes duplicates preserving
// first-seen order.
func dedupeLemmas(lemmas []string) []string {
	seen := make(map[string]struct{}, len(lemmas))
	out := make([]string, 0, len(lemmas))
	for _, l := range lemmas {
		norm := domain.NormalizeLemma(l)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, norm)
	}
	return out
}
