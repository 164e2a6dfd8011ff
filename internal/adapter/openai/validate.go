package openai

import (
	"encoding/json"
	"fmt"

	"github.com/heartmarshall/mydutch-backend/internal/domain"
)

// batchPayload mirrors the function-call arguments.
type batchPayload struct {
	Definitions []domain.DefinitionRecord `json:"definitions"`
}

// parseBatchResponse decodes raw function-call arguments and enforces
// the batch contract: exactly one valid record for every requested
// lemma, none missing, none unrequested. Records are returned in the
// request order of the batch (the provider's order is not trusted),
// with each record's lemma normalized to the requested form.
func parseBatchResponse(raw string, batch []string) ([]domain.DefinitionRecord, error) {
	var payload batchPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("decode arguments: %w", err)
	}

	requested := make(map[string]struct{}, len(batch))
	for _, lemma := range batch {
		requested[lemma] = struct{}{}
	}

	byLemma := make(map[string]domain.DefinitionRecord, len(payload.Definitions))
	for _, rec := range payload.Definitions {
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("record %q: %w", rec.Lemma, err)
		}

		norm := domain.NormalizeLemma(rec.Lemma)
		if _, ok := requested[norm]; !ok {
			return nil, fmt.Errorf("unrequested lemma %q in response", rec.Lemma)
		}
		if _, dup := byLemma[norm]; dup {
			return nil, fmt.Errorf("duplicate lemma %q in response", rec.Lemma)
		}

		rec.Lemma = norm
		byLemma[norm] = rec
	}

	records := make([]domain.DefinitionRecord, 0, len(batch))
	for _, lemma := range batch {
		rec, ok := byLemma[lemma]
		if !ok {
			return nil, fmt.Errorf("lemma %q missing from response", lemma)
		}
		records = append(records, rec)
	}

	return records, nil
}
