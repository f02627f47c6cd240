package domain

import "time"

// Section is one titled span of a parsed filing.
// Sections are produced in document order by the parser.
type Section struct {
	// Title is the section heading. The parser assigns a placeholder
	// (Introduction, Content) when no heading was detected.
	Title string

	// Content is the plain text of the section, markup stripped and
	// entities decoded.
	Content string
}

// ParseMode records which parsing path produced a document.
// Anything other than ParseModeStructured means the parse degraded.
type ParseMode int

const (
	// ParseModeStructured means the strict markup walk succeeded.
	ParseModeStructured ParseMode = iota

	// ParseModeItemPattern means the HTML fallback located "Item N."
	// headings in the flattened text.
	ParseModeItemPattern

	// ParseModeFlat means no headings were found and the whole document
	// became a single catch-all section.
	ParseModeFlat
)

// String returns a short label for logging.
func (m ParseMode) String() string {
	switch m {
	case ParseModeStructured:
		return "structured"
	case ParseModeItemPattern:
		return "item-pattern"
	case ParseModeFlat:
		return "flat"
	default:
		return "unknown"
	}
}

// ParsedDocument is the parser's output: an ordered list of sections.
type ParsedDocument struct {
	// Name is the caller-supplied document identifier.
	Name string

	// Sections holds the titled sections in document order.
	Sections []Section

	// Mode records which parsing path produced the sections.
	Mode ParseMode
}

// FilingMetadata is the typed filing identity attached to every chunk.
// It replaces the loose key-value metadata of earlier pipelines: optional
// fields are explicit nullable members, not keys that may be missing.
type FilingMetadata struct {
	// EntityID is the 10-digit zero-padded canonical identifier.
	// Mandatory for every indexed chunk.
	EntityID string

	// FormType is the regulatory document category (10-K, 8-K, ...).
	FormType string

	// FilingDate is the date the filing was submitted, when known.
	FilingDate *time.Time

	// FilingReference uniquely identifies the source filing
	// (the archive's accession number).
	FilingReference string

	// CompanyName is the filer's display name, when known.
	CompanyName string
}

// Chunk is a bounded, possibly overlapping slice of a section's text.
// It is the unit of indexing and retrieval. Chunks are immutable once
// created.
type Chunk struct {
	// SectionTitle is the title of the section the chunk was cut from.
	SectionTitle string

	// Content is the chunk text.
	Content string

	// StartOffset is the character offset of Content within the parent
	// section's text. Used for traceability, not deduplication.
	StartOffset int

	// Position is the ordinal position of the chunk within its document.
	Position int

	// Metadata is the filing identity, attached after chunking.
	Metadata FilingMetadata
}

// IndexRecord is the persisted unit: a chunk plus a globally unique id.
// The id is stable across re-ingestion of the same document and chunk
// position, making re-indexing idempotent.
type IndexRecord struct {
	ID    string
	Chunk Chunk
}

// RawFiling is the opaque input to the ingestion pipeline: document
// bytes as obtained from the upstream archive, plus the filing identity
// supplied by the fetch boundary.
type RawFiling struct {
	// DocumentName identifies the document (usually the primary
	// document filename).
	DocumentName string

	// Content is the raw HTML or XML bytes.
	Content []byte

	// Metadata is the filing identity. EntityID is mandatory.
	Metadata FilingMetadata
}

// FilingInfo describes one filing listed by the upstream archive.
type FilingInfo struct {
	// EntityID is the filer's canonical identifier.
	EntityID string

	// AccessionNumber uniquely identifies the filing in the archive.
	AccessionNumber string

	// FormType is the regulatory document category.
	FormType string

	// FilingDate is the submission date, when it could be parsed.
	FilingDate *time.Time

	// PrimaryDocument is the filename of the main filing document.
	PrimaryDocument string
}
