package spacy

import (
	"github.com/heartmarshall/mydutch-backend/internal/domain"
)

// tagRequest is the sidecar request body.
type tagRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// tagResponse mirrors the sidecar response.
type tagResponse struct {
	Tokens []apiToken `json:"tokens"`
}

type apiToken struct {
	Text   string `json:"text"`
	Lemma  string `json:"lemma"`
	POS    string `json:"pos"`
	IsStop bool   `json:"is_stop"`
}

// mapTokens converts the wire tokens into domain tokens. Tokens with a
// POS tag outside the Universal Dependencies set are mapped to X so the
// filter downstream can drop them without failing the whole text.
func mapTokens(tr tagResponse) []domain.Token {
	tokens := make([]domain.Token, 0, len(tr.Tokens))
	for _, t := range tr.Tokens {
		pos := domain.PartOfSpeech(t.POS)
		if !pos.IsValid() {
			pos = domain.POSOther
		}
		tokens = append(tokens, domain.Token{
			Text:       t.Text,
			Lemma:      t.Lemma,
			POS:        pos,
			IsStopword: t.IsStop,
		})
	}
	return tokens
}
