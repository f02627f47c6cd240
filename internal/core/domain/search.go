package domain

import "time"

// DateRange bounds a filing-date filter. A zero Start or End leaves
// that side unbounded; a fully zero range applies no date filter.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// IsZero reports whether no date filter was requested.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// SearchQuery describes one retrieval request against the index.
type SearchQuery struct {
	// EntityID is the canonical identifier to search under. Mandatory.
	EntityID string

	// Keywords is the free-text relevance query. May be empty for a
	// filter-only search.
	Keywords string

	// Dates bounds the filing date.
	Dates DateRange

	// FormTypes restricts results to the given form types when non-empty.
	FormTypes []string

	// Limit is the maximum number of results.
	Limit int
}

// ScoredChunk is a single retrieval hit.
type ScoredChunk struct {
	// ID is the index record id of the hit.
	ID string

	// Chunk is the matched passage.
	Chunk Chunk

	// Score is the lexical relevance score (higher is better).
	// Zero for filter-only searches.
	Score float64
}
