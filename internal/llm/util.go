package llm

import "strings"

// CleanJSONBlock strips a surrounding Markdown code fence (optionally tagged
// "json") from a model response. Models wrap JSON in fences even when told
// not to, so every JSON-parsing call site runs its response through this
// before decoding.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	switch {
	case strings.HasPrefix(text, "```json"):
		text = strings.TrimPrefix(text, "```json")
	case strings.HasPrefix(text, "```"):
		text = strings.TrimPrefix(text, "```")
		// Drop a bare language tag left on the first line
		if idx := strings.Index(text, "\n"); idx > 0 {
			firstLine := strings.TrimSpace(text[:idx])
			if firstLine != "" && !strings.ContainsAny(firstLine, " {[\"") {
				text = text[idx+1:]
			}
		}
	default:
		return text
	}

	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
