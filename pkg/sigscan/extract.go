package sigscan

import (
	"strings"
	"time"
	"unicode"

	"github.com/signalworks/sigscan/pkg/sigscan/classify"
	"github.com/signalworks/sigscan/pkg/sigscan/match"
)

// Linking phrases that precede a company-name candidate in free text.
var (
	debtLinkingPhrases = []string{
		"at", "for", "with", "announced", "launched", "raised", "founded",
	}
	regionalLinkingPhrases = []string{
		"company called", "startup called", "working at", "working for", "joined",
	}
)

const maxDescriptionKeywords = 3

// Extractor turns raw items into scored signals for one pipeline. The two
// pipelines differ only in gating, name-extraction and scoring rules, all
// fixed at construction.
type Extractor struct {
	keywords   []string // flattened business-signal keywords
	gate       []string // regional gate keywords; nil disables gating
	phrases    []string
	window     int // tokens per trailing n-gram; 1 means exact token match
	minNameLen int // minimum candidate length in runes
	signalType func(matched []string) string
	score      func(matched int, item RawItem) int

	now func() time.Time // test hook
}

// NewDebtExtractor builds the feed-pipeline extractor: any keyword match
// qualifies, names follow single linking tokens, score is 2 per keyword
// capped at 10.
func NewDebtExtractor(keywords []string) *Extractor {
	return &Extractor{
		keywords:   keywords,
		phrases:    debtLinkingPhrases,
		window:     1,
		minNameLen: 3,
		signalType: func([]string) string { return "Technical Debt" },
		score:      debtScore,
		now:        time.Now,
	}
}

// NewRegionalExtractor builds the discussion-pipeline extractor: a signal
// keyword must co-occur with a regional keyword, linking phrases span up to
// three tokens, and scoring adds regional and engagement bonuses.
func NewRegionalExtractor(keywords, regions []string) *Extractor {
	gate := make([]string, len(regions))
	for i, r := range regions {
		gate[i] = strings.ToLower(r)
	}
	return &Extractor{
		keywords:   keywords,
		gate:       gate,
		phrases:    regionalLinkingPhrases,
		window:     3,
		minNameLen: 1,
		signalType: classify.SignalType,
		score:      regionalScore,
		now:        time.Now,
	}
}

// Extract analyzes one item. The second return value is false when the item
// does not qualify: no keyword matched, or the regional gate (when set) is
// not satisfied.
func (e *Extractor) Extract(item RawItem) (Signal, bool) {
	fullText := item.Title + " " + item.Body

	matched := match.Keywords(fullText, e.keywords)
	if len(matched) == 0 {
		return Signal{}, false
	}
	if e.gate != nil && !match.Any(fullText, e.gate) {
		return Signal{}, false
	}

	name := e.companyName(fullText)
	if name == "" {
		name = UnknownCompany
	}

	desc := matched
	if len(desc) > maxDescriptionKeywords {
		desc = desc[:maxDescriptionKeywords]
	}

	summary := item.Body
	if summary == "" {
		summary = item.Title
	}

	return Signal{
		CompanyName:       name,
		SignalType:        e.signalType(matched),
		SignalDescription: strings.Join(desc, ", "),
		SourceURL:         item.Link,
		Source:            item.Source,
		DetectedDate:      e.now().Format("2006-01-02"),
		RelevanceScore:    e.score(len(matched), item),
		Title:             Sanitize(item.Title, MaxTitleLen),
		Summary:           Sanitize(summary, MaxSummaryLen),
	}, true
}

// companyName scans whitespace-delimited tokens left to right; the token
// after the first linking phrase whose next token passes the candidate rule
// wins. Trailing punctuation is stripped before the check.
func (e *Extractor) companyName(text string) string {
	words := strings.Fields(text)
	for i := range words {
		if i+1 >= len(words) {
			break
		}
		if !e.phraseAt(words, i) {
			continue
		}
		candidate := strings.TrimRight(words[i+1], ".,;:")
		if e.acceptCandidate(candidate) {
			return candidate
		}
	}
	return ""
}

func (e *Extractor) phraseAt(words []string, i int) bool {
	if e.window <= 1 {
		w := strings.ToLower(words[i])
		for _, p := range e.phrases {
			if w == p {
				return true
			}
		}
		return false
	}

	start := i - e.window + 1
	if start < 0 {
		start = 0
	}
	tail := strings.ToLower(strings.Join(words[start:i+1], " "))
	for _, p := range e.phrases {
		if strings.Contains(tail, p) {
			return true
		}
	}
	return false
}

func (e *Extractor) acceptCandidate(candidate string) bool {
	runes := []rune(candidate)
	if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
		return false
	}
	return len(runes) >= e.minNameLen
}

func debtScore(matched int, _ RawItem) int {
	score := matched * 2
	if score > 10 {
		score = 10
	}
	return score
}

func regionalScore(matched int, item RawItem) int {
	// The gate already guarantees a regional keyword, so the bonus is fixed.
	score := matched*2 + 2

	engagement := item.Score / 10
	if engagement < 0 {
		engagement = 0
	}
	if engagement > 3 {
		engagement = 3
	}
	score += engagement

	if score > 10 {
		score = 10
	}
	return score
}
