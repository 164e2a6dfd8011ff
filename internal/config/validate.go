package config

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/mydutch-backend/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Provider.validate(); err != nil {
		return fmt.Errorf("provider: %w", err)
	}

	if err := c.Tagger.validate(); err != nil {
		return fmt.Errorf("tagger: %w", err)
	}

	if c.Vocabulary.MinLemmaLength < 1 {
		return fmt.Errorf("vocabulary: min_lemma_length must be >= 1 (got %d)", c.Vocabulary.MinLemmaLength)
	}

	return nil
}

func (p *ProviderConfig) validate() error {
	if strings.TrimSpace(p.APIKey) == "" {
		return fmt.Errorf("api_key is required: %w", domain.ErrConfiguration)
	}
	if strings.TrimSpace(p.Model) == "" {
		return fmt.Errorf("model must not be empty: %w", domain.ErrConfiguration)
	}
	if p.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d): %w", p.BatchSize, domain.ErrConfiguration)
	}
	if p.MaxAttempts <= 0 {
		return fmt.Errorf("max_attempts must be > 0 (got %d): %w", p.MaxAttempts, domain.ErrConfiguration)
	}
	return nil
}

func (t *TaggerConfig) validate() error {
	if strings.TrimSpace(t.BaseURL) == "" {
		return fmt.Errorf("base_url must not be empty: %w", domain.ErrConfiguration)
	}
	if lang := domain.Language(t.Language); !lang.IsValid() {
		return fmt.Errorf("language %q is not supported: %w", t.Language, domain.ErrConfiguration)
	}
	return nil
}
