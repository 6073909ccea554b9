package sigscan

import "strings"

// Text length caps applied to persisted titles and summaries.
const (
	MaxTitleLen   = 200
	MaxSummaryLen = 500
)

// Sanitize strips control characters (keeping newlines), truncates to max
// runes appending "..." when cut, and trims surrounding whitespace. It is
// applied identically regardless of source.
func Sanitize(text string, max int) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r >= 32 || r == '\n' {
			b.WriteRune(r)
		}
	}

	out := b.String()
	if runes := []rune(out); max > 0 && len(runes) > max {
		out = string(runes[:max]) + "..."
	}
	return strings.TrimSpace(out)
}
