package chroma

import (
	"fmt"
	"strings"
)

const answerResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "results": {
      "type": "array",
      "maxItems": 5,
      "items": {
        "type": "object",
        "properties": {
          "id": {
            "type": "string",
            "pattern": "^(msg_[0-9]+|chunk_[0-9a-f-]+)$"
          },
          "reason": {
            "type": "string"
          },
          "highlight": {
            "type": "string"
          }
        },
        "required": ["id", "reason", "highlight"],
        "additionalProperties": false
      }
    }
  },
  "required": ["results"],
  "additionalProperties": false
}`

var answerSystemPrompt = fmt.Sprintf(`You select the chat messages and conversation excerpts that best answer a search query, and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- The id field must be copied EXACTLY from a "--- document <id> ---" header or a [message-ids] manifest in the provided documents. Never invent ids.
- Return at most 5 results, most relevant first.
- reason states briefly why the document answers the query.
- highlight quotes the most relevant sentence or phrase from the document verbatim.
- If nothing is relevant, return "results": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.`, answerResponseSchema)

// buildAnswerPrompt assembles the user message for one query.
func buildAnswerPrompt(query, docBlock string, prior []string) string {
	var sb strings.Builder

	if len(prior) > 0 {
		sb.WriteString("Earlier answers in this search session, for context:\n")
		for _, p := range prior {
			sb.WriteString(p)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Documents:\n")
	sb.WriteString(docBlock)
	sb.WriteString("\nQuery: ")
	sb.WriteString(query)
	return sb.String()
}
