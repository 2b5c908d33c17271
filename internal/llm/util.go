package llm

import "strings"

// CleanJSONBlock strips a surrounding markdown code fence from a model
// response. Even schema-constrained calls occasionally come back fenced, so
// structured output runs through this before decoding.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	// ```json fences
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
		return text
	}

	// Bare ``` fences, possibly with a language tag on the opening line
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			// A short token without spaces or braces is a language tag, not content.
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
		return text
	}

	return text
}
