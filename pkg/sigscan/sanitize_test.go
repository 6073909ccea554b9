package sigscan

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"empty", "", 100, ""},
		{"passthrough", "plain text", 100, "plain text"},
		{"strips control chars", "bad\x00\x07text", 100, "badtext"},
		{"keeps newlines", "line one\nline two", 100, "line one\nline two"},
		{"trims whitespace", "  padded  ", 100, "padded"},
		{"truncates with ellipsis", "abcdefghij", 5, "abcde..."},
		{"exact length untouched", "abcde", 5, "abcde"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in, tt.max); got != tt.want {
				t.Errorf("Sanitize(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestSanitizeIdempotentOnceTruncated(t *testing.T) {
	long := strings.Repeat("x", 600)

	once := Sanitize(long, MaxSummaryLen)
	twice := Sanitize(once, MaxSummaryLen)

	if once != twice {
		t.Errorf("re-sanitizing a sanitized string changed it:\n once: %q\ntwice: %q", once, twice)
	}
	if !strings.HasSuffix(once, "...") {
		t.Errorf("truncated string should end with ellipsis, got %q", once[len(once)-10:])
	}
}
