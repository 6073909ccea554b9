// Package match implements the keyword lookup used by every pipeline:
// case-insensitive substring containment against a flattened taxonomy.
//
// There is deliberately no word-boundary enforcement: "hire" matches inside
// "hired" and inside unrelated words containing that substring. Downstream
// scoring depends on this literal behavior.
package match

import "strings"

// Keywords returns the keywords present in text, preserving the order of
// the keywords slice (not position in text). Matching is case-insensitive
// substring containment. No matches yields an empty result, never an error.
func Keywords(text string, keywords []string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			found = append(found, kw)
		}
	}
	return found
}

// Any reports whether at least one of the keywords occurs in text.
func Any(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
