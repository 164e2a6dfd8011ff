package openai

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a Dutch language learning assistant that provides definitions and examples for Dutch words.

For each Dutch word, provide:
1. A clear, concise definition in English (1-2 sentences)
2. A Dutch example sentence showing proper usage
3. The English translation of the example sentence
4. A list of semantic categories (e.g., technology, science, business, nature, emotion, food, travel, sports, education, health, art, music, family, work, home, transportation, weather, time, numbers, colors)

Be concise but informative. Use simple language that a general audience can understand.`

// userPrompt builds the per-batch user message. The reformulated
// variant is used after a malformed response and restates the schema
// rules the provider broke.
func userPrompt(lemmas []string, reformulated bool) string {
	joined := strings.Join(lemmas, ", ")

	if !reformulated {
		return fmt.Sprintf(`Please provide definitions for these Dutch words: %s

Output must be returned by calling the provided function with the 'definitions' list.`, joined)
	}

	return fmt.Sprintf(`Please provide definitions for these Dutch words: %s

Your previous answer did not match the required format. Call the provided function with a 'definitions' list that contains exactly one object for each word listed above (no extra words, no omissions) and fill every field: lemma, definition, example, english_translation, and a non-empty category list.`, joined)
}
