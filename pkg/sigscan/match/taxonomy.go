package match

import "strings"

// Taxonomy is a categorized keyword dictionary. Category order follows the
// source document so that flattened keyword order, and therefore matcher
// output order, is reproducible across runs.
type Taxonomy struct {
	Categories []Category
}

// Category is one named keyword list.
type Category struct {
	Name     string
	Keywords []string
}

// Flatten lowercases every keyword and concatenates the categories in
// document order into one combined lookup list. Category boundaries are
// discarded after flattening.
func (t Taxonomy) Flatten() []string {
	var all []string
	for _, cat := range t.Categories {
		for _, kw := range cat.Keywords {
			all = append(all, strings.ToLower(kw))
		}
	}
	return all
}

// Len returns the total keyword count across all categories.
func (t Taxonomy) Len() int {
	n := 0
	for _, cat := range t.Categories {
		n += len(cat.Keywords)
	}
	return n
}
