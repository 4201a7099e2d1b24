// Package ai provides sanitizing and strict parsing of generated text.
package ai

import "strings"

// StripCodeFences removes leading/trailing markdown code-fence markers
// (optionally tagged with a "json" hint) and trims surrounding whitespace.
// It is total and idempotent: input without fences is returned trimmed.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	for _, prefix := range []string{"```json", "```JSON", "```Json", "```"} {
		if strings.HasPrefix(s, prefix) {
			s = strings.TrimSpace(strings.TrimPrefix(s, prefix))
			break
		}
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}
