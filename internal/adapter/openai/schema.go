package openai

import "encoding/json"

const definitionsFunctionName = "provide_definitions"

// definitionsSchema constrains the function-call arguments: one object
// per requested lemma, every field required, at least one category.
var definitionsSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "definitions": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "lemma": {
            "type": "string",
            "description": "The Dutch word (lemma form)"
          },
          "definition": {
            "type": "string",
            "description": "Clear, concise English definition (1-2 sentences)"
          },
          "example": {
            "type": "string",
            "description": "Dutch example sentence showing proper usage"
          },
          "english_translation": {
            "type": "string",
            "description": "English translation of the Dutch example sentence"
          },
          "category": {
            "type": "array",
            "items": {"type": "string"},
            "minItems": 1,
            "description": "Semantic categories for the word"
          }
        },
        "required": ["lemma", "definition", "example", "english_translation", "category"]
      }
    }
  },
  "required": ["definitions"]
}`)
