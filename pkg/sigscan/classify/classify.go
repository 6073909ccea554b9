// Package classify maps matched keywords to a signal-type category.
package classify

import "strings"

// DefaultType is returned when no rule matches. Classification is total:
// every keyword set maps to some type.
const DefaultType = "Regional Activity"

type rule struct {
	signalType string
	markers    []string
}

// rules are evaluated in order; the first rule with any marker present in
// the joined keyword string wins. Classification is not multi-label.
var rules = []rule{
	{"Funding Announcement", []string{"funding", "raised", "series", "investment"}},
	{"Hiring Expansion", []string{"hiring", "seeking", "positions"}},
	{"Geographic Expansion", []string{"opening", "expanding", "new office"}},
	{"Growth Signal", []string{"growing", "scaling", "doubled"}},
}

// SignalType determines the primary signal type for a set of matched
// keywords.
func SignalType(keywords []string) string {
	joined := strings.ToLower(strings.Join(keywords, " "))
	for _, r := range rules {
		for _, marker := range r.markers {
			if strings.Contains(joined, marker) {
				return r.signalType
			}
		}
	}
	return DefaultType
}
