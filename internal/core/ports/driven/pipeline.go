package driven

import "github.com/meridian-labs/disclose-cli/internal/core/domain"

// DocumentParser converts one raw filing document into ordered, titled
// sections. Parsing never fails: malformed input degrades to a
// flattened-text fallback, recorded in the result's Mode.
type DocumentParser interface {
	Parse(raw []byte, documentName string) *domain.ParsedDocument
}

// SectionChunker splits sections into overlapping fixed-size passages.
// The chunker has no knowledge of filing identity; metadata is attached
// by the caller.
type SectionChunker interface {
	Split(sections []domain.Section) []domain.Chunk
}
