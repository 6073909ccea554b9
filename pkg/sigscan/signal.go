// Package sigscan turns noisy unstructured text from external feeds into
// scored, deduplicated signal records suitable for append-only persistence
// in a shared tabular work queue.
package sigscan

import "time"

// UnknownCompany is the sentinel company name used when extraction finds
// no candidate.
const UnknownCompany = "Unknown"

// Agent labels written into destination rows and status payloads.
const (
	DebtAgentName     = "Debt Scanner"
	RegionalAgentName = "Regional Monitor"
)

// Dedup key columns of the two destination row layouts.
const (
	DebtKeyColumn     = "K"
	RegionalKeyColumn = "E"
)

// RawItem is one fetched unit from an external source, normalized by
// source-specific adapters so the core never branches on source type.
// It is transient: created by a source reader, consumed by the extractor,
// then discarded.
type RawItem struct {
	Title     string
	Body      string
	Link      string
	Source    string
	Published time.Time
	Score     int // popularity metric, e.g. upvotes; zero for feeds
}

// Signal is the persisted unit of output: a structured, scored record
// describing a detected business-relevant event.
type Signal struct {
	CompanyName       string
	SignalType        string
	SignalDescription string
	SourceURL         string // dedup key; stable and unique per item
	Source            string
	DetectedDate      string
	RelevanceScore    int // always in [0,10]
	Title             string
	Summary           string
}
