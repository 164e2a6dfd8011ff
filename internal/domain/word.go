package domain

import (
	"time"

	"github.com/google/uuid"
)

// Word is a stored vocabulary word. The natural key is (lemma, language);
// lemma is stored normalized (lowercase, trimmed).
type Word struct {
	ID        uuid.UUID
	Lemma     string
	Language  Language
	CreatedAt time.Time
}

// Definition is a stored AI-generated definition for a word. A word may
// accumulate multiple definitions over time (regeneration inserts new
// rows, it never mutates old ones). ProviderRaw keeps the raw provider
// payload for auditability.
type Definition struct {
	ID                 uuid.UUID
	WordID             uuid.UUID
	Definition         string
	Example            string
	EnglishTranslation string
	Categories         []string
	ProviderRaw        string
	CreatedAt          time.Time
}

// WordWithDefinition pairs a word with its newest definition, if any.
type WordWithDefinition struct {
	Word       Word
	Definition *Definition
}

// KnownWord links a user to a word the user already understands.
// Known words are excluded from extraction results.
type KnownWord struct {
	UserID    uuid.UUID
	WordID    uuid.UUID
	CreatedAt time.Time
}

// Deck is a user-owned collection of words for study.
type Deck struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
}

// DeckWord links a word to a deck.
type DeckWord struct {
	DeckID  uuid.UUID
	WordID  uuid.UUID
	AddedAt time.Time
}

// User is an account that owns known-word lists and decks.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
