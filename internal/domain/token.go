package domain

// Token is a single tagged token as returned by the linguistic model.
// Tokens are ephemeral: they exist only for the duration of one
// extraction call and are never persisted.
type Token struct {
	Text       string
	Lemma      string
	POS        PartOfSpeech
	IsStopword bool
}

// LemmaFrequency aggregates all occurrences of one lemma within a
// single extraction run. SurfaceForms are deduplicated and kept in
// first-seen order; Count is the number of surviving token occurrences
// that contributed to the lemma.
type LemmaFrequency struct {
	Lemma        string
	SurfaceForms []string
	Count        int
}

// DefinitionRecord is one AI-generated definition for a lemma, parsed
// and schema-checked from a provider batch response.
type DefinitionRecord struct {
	Lemma              string   `json:"lemma"`
	Definition         string   `json:"definition"`
	Example            string   `json:"example"`
	EnglishTranslation string   `json:"english_translation"`
	Categories         []string `json:"category"`
}

// Validate checks that a record carries every required field.
func (r DefinitionRecord) Validate() error {
	switch {
	case r.Lemma == "":
		return NewValidationError("lemma", "must not be empty")
	case r.Definition == "":
		return NewValidationError("definition", "must not be empty")
	case r.Example == "":
		return NewValidationError("example", "must not be empty")
	case r.EnglishTranslation == "":
		return NewValidationError("english_translation", "must not be empty")
	case len(r.Categories) == 0:
		return NewValidationError("category", "must contain at least one category")
	}
	for _, c := range r.Categories {
		if c == "" {
			return NewValidationError("category", "categories must not be empty strings")
		}
	}
	return nil
}
