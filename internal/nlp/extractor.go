// Package nlp extracts unfamiliar noun lemmas from Dutch text.
// Tokenization and tagging are delegated to an external linguistic
// model behind the Tagger interface; this package only filters,
// groups, and ranks the tagged tokens.
package nlp

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/heartmarshall/mydutch-backend/internal/config"
	"github.com/heartmarshall/mydutch-backend/internal/domain"
)

// Tagger is the linguistic model boundary: it tokenizes, lemmatizes,
// and POS-tags raw text.
type Tagger interface {
	Tag(ctx context.Context, text string) ([]domain.Token, error)
}

// Extractor selects unfamiliar noun lemmas from tagged text.
type Extractor struct {
	log       *slog.Logger
	tagger    Tagger
	minLength int
}

// NewExtractor creates an Extractor using the given tagger.
func NewExtractor(logger *slog.Logger, tagger Tagger, cfg config.VocabularyConfig) *Extractor {
	minLength := cfg.MinLemmaLength
	if minLength < 1 {
		minLength = 2
	}
	return &Extractor{
		log:       logger.With("component", "extractor"),
		tagger:    tagger,
		minLength: minLength,
	}
}

// Extract returns the unfamiliar noun lemmas of text, ranked by
// occurrence count (descending) with ties broken by lemma (ascending).
// knownWords are matched case-insensitively against lemmas; a nil or
// empty slice disables that filter. Blank text yields an empty result,
// not an error. Tokens the tagger could not lemmatize are skipped.
func (e *Extractor) Extract(ctx context.Context, text string, knownWords []string) ([]domain.LemmaFrequency, error) {
	if strings.TrimSpace(text) == "" {
		return []domain.LemmaFrequency{}, nil
	}

	tokens, err := e.tagger.Tag(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("tag text: %w", err)
	}

	known := make(map[string]struct{}, len(knownWords))
	for _, w := range knownWords {
		known[domain.NormalizeLemma(w)] = struct{}{}
	}

	// Group surviving tokens by normalized lemma. byLemma keeps the
	// accumulator; order holds first-seen lemma order so grouping is
	// deterministic before the final sort.
	byLemma := make(map[string]*domain.LemmaFrequency)
	var order []string
	skipped := 0

	for _, tok := range tokens {
		lemma := domain.NormalizeLemma(tok.Lemma)
		if lemma == "" {
			// Tagger failed to lemmatize this token; not fatal.
			skipped++
			continue
		}
		if !e.keep(tok, lemma, known) {
			continue
		}

		freq, ok := byLemma[lemma]
		if !ok {
			freq = &domain.LemmaFrequency{Lemma: lemma}
			byLemma[lemma] = freq
			order = append(order, lemma)
		}
		freq.Count++
		addSurfaceForm(freq, tok.Text)
	}

	results := make([]domain.LemmaFrequency, 0, len(order))
	for _, lemma := range order {
		results = append(results, *byLemma[lemma])
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Count != results[j].Count {
			return results[i].Count > results[j].Count
		}
		return results[i].Lemma < results[j].Lemma
	})

	if skipped > 0 {
		e.log.DebugContext(ctx, "skipped unlemmatized tokens", slog.Int("count", skipped))
	}

	return results, nil
}

// keep reports whether a token survives the vocabulary filter.
func (e *Extractor) keep(tok domain.Token, lemma string, known map[string]struct{}) bool {
	if tok.POS != domain.POSNoun {
		return false
	}
	if tok.IsStopword {
		return false
	}
	if len([]rune(lemma)) < e.minLength {
		return false
	}
	if !IsValidDutchWord(lemma) {
		return false
	}
	if _, ok := known[lemma]; ok {
		return false
	}
	return true
}

// addSurfaceForm appends form if it has not been seen for this lemma yet.
// Surface casing is preserved; order is first-seen.
func addSurfaceForm(freq *domain.LemmaFrequency, form string) {
	for _, f := range freq.SurfaceForms {
		if f == form {
			return
		}
	}
	freq.SurfaceForms = append(freq.SurfaceForms, form)
}
